package messages

import (
	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
	"github.com/google/uuid"
)

// EntityRef points at another entity by code or by UUID.
type EntityRef struct {
	Code string `json:"code,omitempty"`
	UUID string `json:"uuid,omitempty"`
}

// EntityRefFromMixed builds a reference from a bare scalar (taken as the code)
// or from a map carrying code and/or uuid keys.
func EntityRefFromMixed(v any) (*EntityRef, error) {
	if code, ok := scalarString(v); ok {
		return &EntityRef{Code: code}, nil
	}
	data, ok := v.(map[string]any)
	if !ok {
		return nil, apperrors.New(apperrors.KindBadRequest, i18n.T("Entity reference must be a code or an object."))
	}
	ref := &EntityRef{}
	if c, present := data["code"]; present && c != nil {
		code, ok := scalarString(c)
		if !ok {
			return nil, badField(FieldCode)
		}
		ref.Code = code
	}
	if u, present := data["uuid"]; present && u != nil {
		id, ok := u.(string)
		if !ok {
			return nil, badField(FieldUUID)
		}
		ref.UUID = id
	}
	return ref, nil
}

// Validate checks the reference. When neither identifier is present the
// fallback code, if any, is substituted.
func (e *EntityRef) Validate(_ OpFlags, fallbackCode string) error {
	if e.UUID != "" {
		if _, err := uuid.Parse(e.UUID); err != nil {
			return apperrors.New(apperrors.KindBadRequest, i18n.T("Invalid uuid %s.", e.UUID))
		}
		return nil
	}
	if e.Code == "" {
		if fallbackCode == "" {
			return apperrors.New(apperrors.KindBadRequest,
				i18n.T("Entity reference must have either code or uuid entries."))
		}
		e.Code = fallbackCode
	}
	return nil
}
