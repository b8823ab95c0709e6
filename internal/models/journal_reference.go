package models

import "time"

// JournalReference is a row of journal_references.
type JournalReference struct {
	JournalReferenceUUID string    `db:"journal_reference_uuid"`
	DomainUUID           string    `db:"domain_uuid"`
	Code                 string    `db:"code"`
	Extra                *string   `db:"extra"` // Nullable
	Revision             time.Time `db:"revision"`
	AuditFields
}
