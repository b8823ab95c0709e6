package domain

import (
	"strconv"
	"time"
)

// LedgerDomain is a scoping boundary (a set of books) under which codes are unique.
type LedgerDomain struct {
	DomainUUID      string       `json:"domainUuid"`
	Code            string       `json:"code"`
	CurrencyDefault string       `json:"currencyDefault"`
	SubJournals     bool         `json:"subJournals"` // Whether entries in this domain use sub-journals
	Extra           *string      `json:"extra,omitempty"`
	Names           []LedgerName `json:"names"`
	Revision        time.Time    `json:"revision"`
	AuditFields
	RevisionCache `json:"-"`
}

func (d *LedgerDomain) RevisionFields() map[string]string {
	return map[string]string{
		"domainUuid":      d.DomainUUID,
		"code":            d.Code,
		"currencyDefault": d.CurrencyDefault,
		"subJournals":     strconv.FormatBool(d.SubJournals),
		"extra":           extraField(d.Extra),
	}
}

func (d *LedgerDomain) RevisionTime() time.Time {
	return d.Revision
}

func (d *LedgerDomain) RevisionHash() string {
	return d.RevisionCache.Hash(d)
}

func (d *LedgerDomain) OwnerUUID() string {
	return d.DomainUUID
}

func (d *LedgerDomain) NameList() []LedgerName {
	return d.Names
}
