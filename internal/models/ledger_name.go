package models

// LedgerName is a row of ledger_names, keyed by (owner_uuid, language).
type LedgerName struct {
	OwnerUUID string `db:"owner_uuid"`
	Language  string `db:"language"`
	Name      string `db:"name"`
	AuditFields
}
