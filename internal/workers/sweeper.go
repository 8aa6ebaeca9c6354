package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/store"
)

// expirySweeper periodically deletes rows whose deadline has passed: share
// grants, login challenges, and session ledger entries. Lazy expiry at
// access time already guarantees that an expired row never authenticates
// anything; the sweeper only keeps the tables from accumulating dead rows.
type expirySweeper struct {
	shares     store.ShareRepository
	challenges store.ChallengeRepository
	tokens     store.TokenRepository
	interval   time.Duration
	logger     *logger.Logger
}

func newExpirySweeper(repos *store.Repositories, interval time.Duration, logger *logger.Logger) *expirySweeper {
	return &expirySweeper{
		shares:     repos.ShareRepository,
		challenges: repos.ChallengeRepository,
		tokens:     repos.TokenRepository,
		interval:   interval,
		logger:     logger,
	}
}

// Run launches the sweep loop in its own goroutine and returns immediately.
func (s *expirySweeper) Run() {
	go s.loop()
}

func (s *expirySweeper) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("expiry sweeper started")

	for range ticker.C {
		s.sweep(context.Background())
	}
}

// sweep runs one pass over all three tables. A failure on one table does not
// stop the others; each is logged on its own.
func (s *expirySweeper) sweep(ctx context.Context) {
	if n, err := s.shares.DeleteExpiredShares(ctx); err != nil {
		s.logger.Error().Err(err).Msg("sweeping expired shares failed")
	} else if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("swept expired shares")
	}

	if n, err := s.challenges.DeleteExpiredChallenges(ctx); err != nil {
		s.logger.Error().Err(err).Msg("sweeping expired challenges failed")
	} else if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("swept expired challenges")
	}

	if n, err := s.tokens.DeleteExpiredTokens(ctx); err != nil {
		s.logger.Error().Err(err).Msg("sweeping expired sessions failed")
	} else if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("swept expired sessions")
	}
}
