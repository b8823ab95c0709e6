package domain

import "time"

// JournalReference links journal entries to an external entity (customer, vendor, etc.).
// Codes are unique within a domain.
type JournalReference struct {
	JournalReferenceUUID string    `json:"journalReferenceUuid"`
	DomainUUID           string    `json:"domainUuid"`
	Code                 string    `json:"code"`
	Extra                *string   `json:"extra,omitempty"` // Application specific information
	Revision             time.Time `json:"revision"`
	AuditFields
	RevisionCache `json:"-"`
}

// RevisionFields implements Revisable.
func (r *JournalReference) RevisionFields() map[string]string {
	return map[string]string{
		"journalReferenceUuid": r.JournalReferenceUUID,
		"domainUuid":           r.DomainUUID,
		"code":                 r.Code,
		"extra":                extraField(r.Extra),
	}
}

// RevisionTime implements Revisable.
func (r *JournalReference) RevisionTime() time.Time {
	return r.Revision
}

// RevisionHash returns the cached revision hash.
func (r *JournalReference) RevisionHash() string {
	return r.RevisionCache.Hash(r)
}
