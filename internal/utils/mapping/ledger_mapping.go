package mapping

import (
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/models"
)

// ToDomainJournalReference converts a model JournalReference to a domain JournalReference.
func ToDomainJournalReference(m models.JournalReference) domain.JournalReference {
	return domain.JournalReference{
		JournalReferenceUUID: m.JournalReferenceUUID,
		DomainUUID:           m.DomainUUID,
		Code:                 m.Code,
		Extra:                m.Extra,
		Revision:             m.Revision,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalReferenceSlice converts a slice of model references.
func ToDomainJournalReferenceSlice(ms []models.JournalReference) []domain.JournalReference {
	ds := make([]domain.JournalReference, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalReference(m)
	}
	return ds
}

// ToDomainSubJournal converts a model SubJournal. Names are loaded separately.
func ToDomainSubJournal(m models.SubJournal, names []models.LedgerName) domain.SubJournal {
	return domain.SubJournal{
		SubJournalUUID: m.SubJournalUUID,
		Code:           m.Code,
		Extra:          m.Extra,
		Names:          ToDomainLedgerNameSlice(names),
		Revision:       m.Revision,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerDomain converts a model LedgerDomain. Names are loaded separately.
func ToDomainLedgerDomain(m models.LedgerDomain, names []models.LedgerName) domain.LedgerDomain {
	return domain.LedgerDomain{
		DomainUUID:      m.DomainUUID,
		Code:            m.Code,
		CurrencyDefault: m.CurrencyDefault,
		SubJournals:     m.SubJournals,
		Extra:           m.Extra,
		Names:           ToDomainLedgerNameSlice(names),
		Revision:        m.Revision,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerName converts a model LedgerName.
func ToDomainLedgerName(m models.LedgerName) domain.LedgerName {
	return domain.LedgerName{
		OwnerUUID: m.OwnerUUID,
		Language:  m.Language,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToDomainLedgerNameSlice converts a slice of model names.
func ToDomainLedgerNameSlice(ms []models.LedgerName) []domain.LedgerName {
	ds := make([]domain.LedgerName, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerName(m)
	}
	return ds
}
