package domain

import "time"

// LedgerName is a localized name attached to an owner entity.
// Names are unique by (OwnerUUID, Language).
type LedgerName struct {
	OwnerUUID string    `json:"ownerUuid"`
	Language  string    `json:"language"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NameOwner is an entity that carries localized names.
type NameOwner interface {
	OwnerUUID() string
	NameList() []LedgerName
}

// FindName returns the name for language, or nil when the owner has none.
func FindName(owner NameOwner, language string) *LedgerName {
	names := owner.NameList()
	for i := range names {
		if names[i].Language == language {
			return &names[i]
		}
	}
	return nil
}
