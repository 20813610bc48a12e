package services

import (
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/platform/config"
	"github.com/SscSPs/cek_senet_app/internal/platform/exchangerate"
	"github.com/spf13/afero"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// rates is the external exchange-rate source and fs the filesystem backups are written to.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rates portssvc.RateProvider, fs afero.Fs) *portssvc.ServiceContainer {
	opts := []ServiceOption{WithLocation(cfg.Location)}
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, opts...)
	container.TokenService = NewTokenService(cfg, container.User, opts...)
	container.GoogleOAuth = NewGoogleOAuthService(cfg, opts...)

	container.Party = NewPartyService(repos.PartyRepo, repos.DocumentRepo, opts...)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.PartyRepo, opts...)
	container.Credit = NewCreditService(repos.CreditRepo, opts...)

	container.ExchangeRate = NewExchangeRateService(
		rates,
		exchangerate.NewCache(cfg.ExchangeRateTTL),
		repos.ExchangeRateRepo,
		opts...,
	)
	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		repos.DocumentRepo,
		repos.CreditRepo,
		container.ExchangeRate,
		opts...,
	)
	container.Backup = NewBackupService(
		fs,
		cfg.BackupDir,
		cfg.BackupRetentionDays,
		repos.DocumentRepo,
		repos.PartyRepo,
		repos.CreditRepo,
		opts...,
	)

	return container
}
