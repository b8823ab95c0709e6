package models

import "time"

// LedgerDomain is a row of ledger_domains.
type LedgerDomain struct {
	DomainUUID      string    `db:"domain_uuid"`
	Code            string    `db:"code"`
	CurrencyDefault string    `db:"currency_default"`
	SubJournals     bool      `db:"sub_journals"`
	Extra           *string   `db:"extra"`
	Revision        time.Time `db:"revision"`
	AuditFields
}
