package models

import "time"

// SubJournal is a row of sub_journals.
type SubJournal struct {
	SubJournalUUID string    `db:"sub_journal_uuid"`
	Code           string    `db:"code"`
	Extra          *string   `db:"extra"`
	Revision       time.Time `db:"revision"`
	AuditFields
}
