package store

import "github.com/MKhiriev/go-file-vault/internal/logger"

type Repositories struct {
	UserRepository      UserRepository
	FileRepository      FileRepository
	ShareRepository     ShareRepository
	ChallengeRepository ChallengeRepository
	TokenRepository     TokenRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db, log),
		FileRepository:      NewFileRepository(db, log),
		ShareRepository:     NewShareRepository(db, log),
		ChallengeRepository: NewChallengeRepository(db, log),
		TokenRepository:     NewTokenRepository(db, log),
	}
}
