package services

import (
	"context"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/core/messages"
)

// RulesSvc provides the ledger-wide rules consulted by message validation.
type RulesSvc interface {
	// GetRules returns nil rules and no error while the ledger is uninitialized.
	GetRules(ctx context.Context) (*domain.LedgerRules, error)

	// InitLedger stores rules and creates the default domain when it is missing.
	InitLedger(ctx context.Context, rules domain.LedgerRules) (*domain.LedgerRules, error)
}

// ReferenceReaderSvc defines read operations for journal references.
type ReferenceReaderSvc interface {
	GetReference(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error)

	// QueryReferences lists references of the message's domain, a page at a time.
	QueryReferences(ctx context.Context, msg *messages.Reference, limit int, nextToken *string) ([]domain.JournalReference, *string, error)

	// Lookup verifies that the reference exists, filling in its UUID.
	Lookup(ctx context.Context, msg *messages.Reference) (*messages.Reference, error)
}

// ReferenceWriterSvc defines write operations for journal references.
type ReferenceWriterSvc interface {
	AddReference(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error)
	UpdateReference(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error)
	DeleteReference(ctx context.Context, msg *messages.Reference) error
}

// ReferenceSvcFacade combines all reference operations.
type ReferenceSvcFacade interface {
	ReferenceReaderSvc
	ReferenceWriterSvc

	// Run performs the message's add, get, update or delete operation. A
	// delete returns a nil reference.
	Run(ctx context.Context, msg *messages.Reference) (*domain.JournalReference, error)
}

// SubJournalSvcFacade combines all sub-journal operations.
type SubJournalSvcFacade interface {
	GetSubJournal(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error)
	AddSubJournal(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error)
	UpdateSubJournal(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error)
	DeleteSubJournal(ctx context.Context, msg *messages.SubJournal) error
	Run(ctx context.Context, msg *messages.SubJournal) (*domain.SubJournal, error)
}

// DomainSvcFacade combines all domain operations.
type DomainSvcFacade interface {
	GetDomain(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error)
	AddDomain(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error)
	UpdateDomain(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error)
	DeleteDomain(ctx context.Context, msg *messages.Domain) error
	Run(ctx context.Context, msg *messages.Domain) (*domain.LedgerDomain, error)
}
