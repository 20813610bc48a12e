package pgsql

import (
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo:     newPgxDocumentRepository(dbPool),
		PartyRepo:        newPgxPartyRepository(dbPool),
		CreditRepo:       newPgxCreditRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}
