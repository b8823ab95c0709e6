package repositories

import (
	"context"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/messages"
)

// NameSync applies pending name changes to owner through store. Repositories
// invoke it inside the transaction that saves the owner row.
type NameSync func(ctx context.Context, owner domain.NameOwner, store messages.NameStore) error

// JournalReferenceReader defines read operations for journal references.
type JournalReferenceReader interface {
	// FindJournalReference retrieves a reference within key.DomainUUID by UUID or code.
	FindJournalReference(ctx context.Context, key domain.LookupKey) (*domain.JournalReference, error)

	// ListJournalReferences lists the references of a domain ordered by code.
	// The returned token is nil on the last page.
	ListJournalReferences(ctx context.Context, domainUUID string, limit int, nextToken *string) ([]domain.JournalReference, *string, error)
}

// JournalReferenceWriter defines write operations for journal references.
// Update and delete succeed only while the stored revision equals ref.Revision.
type JournalReferenceWriter interface {
	CreateJournalReference(ctx context.Context, ref domain.JournalReference) (*domain.JournalReference, error)
	UpdateJournalReference(ctx context.Context, ref *domain.JournalReference) error
	DeleteJournalReference(ctx context.Context, ref *domain.JournalReference) error
}

// JournalReferenceRepositoryFacade combines all journal reference operations.
type JournalReferenceRepositoryFacade interface {
	JournalReferenceReader
	JournalReferenceWriter
}

// SubJournalReader defines read operations for sub-journals.
type SubJournalReader interface {
	FindSubJournal(ctx context.Context, key domain.LookupKey) (*domain.SubJournal, error)
}

// SubJournalWriter defines write operations for sub-journals. Names are
// synchronized in the same transaction as the row.
type SubJournalWriter interface {
	CreateSubJournal(ctx context.Context, journal domain.SubJournal, names NameSync) (*domain.SubJournal, error)
	UpdateSubJournal(ctx context.Context, journal *domain.SubJournal, names NameSync) error
	DeleteSubJournal(ctx context.Context, journal *domain.SubJournal) error
}

// SubJournalRepositoryFacade combines all sub-journal operations.
type SubJournalRepositoryFacade interface {
	SubJournalReader
	SubJournalWriter
}

// LedgerDomainReader defines read operations for domains.
type LedgerDomainReader interface {
	FindLedgerDomain(ctx context.Context, key domain.LookupKey) (*domain.LedgerDomain, error)
}

// LedgerDomainWriter defines write operations for domains.
type LedgerDomainWriter interface {
	CreateLedgerDomain(ctx context.Context, d domain.LedgerDomain, names NameSync) (*domain.LedgerDomain, error)
	UpdateLedgerDomain(ctx context.Context, d *domain.LedgerDomain, names NameSync) error
	DeleteLedgerDomain(ctx context.Context, d *domain.LedgerDomain) error
}

// LedgerDomainRepositoryFacade combines all domain operations.
type LedgerDomainRepositoryFacade interface {
	LedgerDomainReader
	LedgerDomainWriter
}

// LedgerRulesRepository stores the ledger-wide rules document.
type LedgerRulesRepository interface {
	// GetLedgerRules returns apperrors.ErrNotFound before the ledger is initialized.
	GetLedgerRules(ctx context.Context) (*domain.LedgerRules, error)
	SaveLedgerRules(ctx context.Context, rules domain.LedgerRules) error
}

// SubJournalRepositoryWithTx extends SubJournalRepositoryFacade with transaction capabilities.
type SubJournalRepositoryWithTx interface {
	SubJournalRepositoryFacade
	TransactionManager
}

// LedgerDomainRepositoryWithTx extends LedgerDomainRepositoryFacade with transaction capabilities.
type LedgerDomainRepositoryWithTx interface {
	LedgerDomainRepositoryFacade
	TransactionManager
}
