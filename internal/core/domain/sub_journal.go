package domain

import "time"

// SubJournal is a named journal within the ledger.
type SubJournal struct {
	SubJournalUUID string       `json:"subJournalUuid"`
	Code           string       `json:"code"`
	Extra          *string      `json:"extra,omitempty"`
	Names          []LedgerName `json:"names"`
	Revision       time.Time    `json:"revision"`
	AuditFields
	RevisionCache `json:"-"`
}

func (j *SubJournal) RevisionFields() map[string]string {
	return map[string]string{
		"subJournalUuid": j.SubJournalUUID,
		"code":           j.Code,
		"extra":          extraField(j.Extra),
	}
}

func (j *SubJournal) RevisionTime() time.Time {
	return j.Revision
}

func (j *SubJournal) RevisionHash() string {
	return j.RevisionCache.Hash(j)
}

// OwnerUUID implements NameOwner.
func (j *SubJournal) OwnerUUID() string {
	return j.SubJournalUUID
}

// NameList implements NameOwner.
func (j *SubJournal) NameList() []LedgerName {
	return j.Names
}
