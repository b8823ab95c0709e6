package messages

import (
	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
)

var subJournalCopyable = copyTable{
	{FieldCode, OpAll},
	{FieldExtra, OpAdd | OpUpdate},
	{FieldNames, OpAdd | OpUpdate},
	{FieldRevision, OpDelete | OpUpdate},
	{FieldToCode, OpUpdate},
	{FieldUUID, OpAll},
}

// SubJournal is a request against a sub-journal.
type SubJournal struct {
	base
	codeFields
	Extra    *string
	Names    map[string]*Name
	Revision string
}

// SubJournalFromMap populates a sub-journal message from request data.
func SubJournalFromMap(data map[string]any, ops OpFlags, rules *domain.LedgerRules) (*SubJournal, error) {
	journal := &SubJournal{base: base{opFlags: ops}, Names: map[string]*Name{}}
	err := subJournalCopyable.copy(data, ops, func(field Field, v any) error {
		if handled, err := journal.assignCode(field, v); handled {
			return err
		}
		switch field {
		case FieldExtra:
			extra, err := extraString(v)
			if err != nil {
				return badField(field)
			}
			journal.Extra = &extra
		case FieldNames:
			names, err := namesFromValue(v, ops, rules)
			if err != nil {
				return err
			}
			journal.Names = names
		case FieldRevision:
			s, ok := v.(string)
			if !ok {
				return badField(field)
			}
			journal.Revision = s
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ops.Has(FlagValidate) {
		if err := journal.Validate(ops, rules); err != nil {
			return nil, err
		}
	}
	return journal, nil
}

// Validate checks codes against the ledger code rules and validates names.
func (j *SubJournal) Validate(ops OpFlags, rules *domain.LedgerRules) error {
	ops = j.resolveOps(ops)
	if rules == nil {
		return apperrors.New(apperrors.KindBadRequest, uninitialized())
	}
	errs := j.validateCodes(ops, rules.Codes)
	if ops.Has(OpAdd) && len(j.Names) == 0 {
		errs = append(errs, i18n.T("must provide at least %d name %s", 1, "entry"))
	}
	if ops.Has(OpUpdate|OpDelete) && j.Revision == "" {
		errs = append(errs, i18n.T("A revision code is required."))
	}
	if len(errs) != 0 {
		return apperrors.New(apperrors.KindBadRequest, errs...)
	}
	return validateNames(j.Names, ops, rules)
}

// validateNames validates every name and re-keys the set on the canonical
// language. When two entries collapse onto one language the later one wins.
func validateNames(names map[string]*Name, ops OpFlags, rules *domain.LedgerRules) error {
	canonical := make(map[string]*Name, len(names))
	for _, name := range names {
		if err := name.Validate(ops, rules); err != nil {
			return err
		}
		if prev, ok := canonical[name.Language]; ok && prev.position > name.position {
			continue
		}
		canonical[name.Language] = name
	}
	for key := range names {
		delete(names, key)
	}
	for key, name := range canonical {
		names[key] = name
	}
	return nil
}
