package domain

import (
	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
)

// LookupKey selects a single stored entity. DomainUUID scopes the lookup when set;
// within the scope UUID is preferred over Code.
type LookupKey struct {
	DomainUUID string
	UUID       string
	Code       string
}

// NewLookupKey builds a key from the identifiers carried by a message.
// It fails with INVALID_DATA when neither a UUID nor a code is supplied.
func NewLookupKey(domainUUID, uuid, code string) (LookupKey, error) {
	if uuid == "" && code == "" {
		return LookupKey{}, apperrors.New(apperrors.KindInvalidData,
			i18n.T("Lookup must have either code or uuid entries"))
	}
	key := LookupKey{DomainUUID: domainUUID}
	if uuid != "" {
		key.UUID = uuid
	} else {
		key.Code = code
	}
	return key, nil
}

// ByUUID reports whether the key selects by primary UUID.
func (k LookupKey) ByUUID() bool {
	return k.UUID != ""
}

// Describe returns the identifier used by the key, for messages.
func (k LookupKey) Describe() string {
	if k.ByUUID() {
		return k.UUID
	}
	return k.Code
}
