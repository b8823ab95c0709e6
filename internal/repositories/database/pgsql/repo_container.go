package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ReferenceRepo:  newPgxJournalReferenceRepository(dbPool),
		SubJournalRepo: newPgxSubJournalRepository(dbPool),
		DomainRepo:     newPgxLedgerDomainRepository(dbPool),
		RulesRepo:      newPgxLedgerRulesRepository(dbPool),
	}
}
