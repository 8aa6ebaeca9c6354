package service

import (
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/mail"
	"github.com/MKhiriev/go-file-vault/internal/store"
)

type Services struct {
	AuthService  AuthService
	FileService  FileService
	ShareService ShareService
	UserService  UserService
}

func NewServices(repos *store.Repositories, envelope crypto.EnvelopeService, mailer mail.Mailer, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	fileService, err := NewFileService(repos, envelope, cfg.Storage.Files, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:  NewAuthService(repos, mailer, cfg.App, logger),
		FileService:  fileService,
		ShareService: NewShareService(repos, envelope, mailer, cfg.App, logger),
		UserService:  NewUserService(repos, logger),
	}, nil
}
