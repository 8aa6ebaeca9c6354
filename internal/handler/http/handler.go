package http

import (
	"time"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
)

type Handler struct {
	services *service.Services

	// loginLimiter throttles the password step per client IP before any
	// credential work happens.
	loginLimiter *slidingWindowLimiter

	// tokenDuration sizes the session cookie's lifetime to match the JWT.
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		loginLimiter:  newSlidingWindowLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow),
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}
