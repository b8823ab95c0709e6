package domain

import "time"

// AuditFields holds the server maintained timestamps of a ledger entity.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// extraField renders an optional extra payload for revision hashing.
func extraField(extra *string) string {
	if extra == nil {
		return ""
	}
	return "+" + *extra
}
