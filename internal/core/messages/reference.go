package messages

import (
	"strings"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
)

var referenceCopyable = copyTable{
	{FieldCode, OpAll},
	{FieldExtra, OpAll},
	{FieldRevision, OpDelete | OpUpdate},
	{FieldToCode, OpUpdate},
	{FieldUUID, OpAll},
}

// Reference is a request against a journal reference.
type Reference struct {
	base
	codeFields
	Domain   *EntityRef
	Extra    *string
	Revision string // Revision signature, required for update and delete.
}

// JournalReferenceUUID returns the primary UUID carried by the message, if any.
func (r *Reference) JournalReferenceUUID() string {
	return r.UUID
}

// ReferenceFromMap populates a reference message from request data.
func ReferenceFromMap(data map[string]any, ops OpFlags, rules *domain.LedgerRules) (*Reference, error) {
	ref := &Reference{base: base{opFlags: ops}}
	err := referenceCopyable.copy(data, ops, func(field Field, v any) error {
		if handled, err := ref.assignCode(field, v); handled {
			return err
		}
		switch field {
		case FieldExtra:
			extra, err := extraString(v)
			if err != nil {
				return badField(field)
			}
			ref.Extra = &extra
		case FieldRevision:
			s, ok := v.(string)
			if !ok {
				return badField(field)
			}
			ref.Revision = s
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if v, ok := data["domain"]; ok && v != nil {
		if ref.Domain, err = EntityRefFromMixed(v); err != nil {
			return nil, err
		}
	}
	if ops.Has(FlagValidate) {
		if err := ref.Validate(ops, rules); err != nil {
			return nil, err
		}
	}
	return ref, nil
}

// Validate checks codes and resolves the domain reference, defaulting it to
// the ledger's default domain.
func (r *Reference) Validate(ops OpFlags, rules *domain.LedgerRules) error {
	ops = r.resolveOps(ops)
	errs := r.validateCodes(ops, anyCode)
	if rules == nil {
		errs = append(errs, uninitialized())
	} else {
		if r.Domain == nil {
			r.Domain = &EntityRef{Code: rules.Domain.Default}
		}
		if err := r.Domain.Validate(0, rules.Domain.Default); err != nil {
			errs = append(errs, apperrors.MessagesOf(err)...)
		}
		if rules.Codes.Uppercase {
			r.Domain.Code = strings.ToUpper(r.Domain.Code)
		}
	}
	if ops.Has(OpUpdate|OpDelete) && r.Revision == "" {
		errs = append(errs, i18n.T("A revision code is required."))
	}
	if len(errs) != 0 {
		return apperrors.New(apperrors.KindBadRequest, errs...)
	}
	return nil
}
