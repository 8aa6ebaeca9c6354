package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/crypto"
	"github.com/MKhiriev/go-file-vault/internal/handler"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/mail"
	"github.com/MKhiriev/go-file-vault/internal/server"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-file-vault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	masterKey, err := cfg.MasterKey()
	if err != nil {
		log.Fatal().Err(err).Msg("error decoding master key")
	}
	ivSeed, err := cfg.IVSeed()
	if err != nil {
		log.Fatal().Err(err).Msg("error decoding iv seed")
	}

	envelope, err := crypto.NewEnvelopeService(masterKey, ivSeed)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating envelope service")
	}

	mailer := newMailer(*cfg, log)
	repos := store.NewRepositories(db, log)

	services, err := service.NewServices(repos, envelope, mailer, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(repos, cfg.Workers, log).Run()

	srv.RunServer()
}

// newMailer picks the SMTP collaborator when a host is configured, falling
// back to the discarding mailer for local development. MFA login is
// effectively unusable with the fallback since codes go nowhere.
func newMailer(cfg config.StructuredConfig, log *logger.Logger) mail.Mailer {
	if cfg.Mail.Host == "" {
		log.Warn().Msg("no SMTP host configured, outbound mail is discarded")
		return mail.NewNopMailer()
	}

	mailer, err := mail.NewSMTPMailer(cfg.Mail, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating SMTP mailer")
	}
	return mailer
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
