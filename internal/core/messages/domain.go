package messages

import (
	"regexp"
	"strings"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

var domainCopyable = copyTable{
	{FieldCode, OpAll},
	{FieldCurrencyDefault, OpAdd | OpUpdate},
	{FieldExtra, OpAdd | OpUpdate},
	{FieldNames, OpAdd | OpUpdate},
	{FieldRevision, OpDelete | OpUpdate},
	{FieldSubJournals, OpAdd | OpUpdate},
	{FieldToCode, OpUpdate},
	{FieldUUID, OpAll},
}

// Domain is a request against a ledger domain.
type Domain struct {
	base
	codeFields
	CurrencyDefault string
	Extra           *string
	Names           map[string]*Name
	Revision        string
	SubJournals     *bool
}

// DomainFromMap populates a domain message from request data.
func DomainFromMap(data map[string]any, ops OpFlags, rules *domain.LedgerRules) (*Domain, error) {
	d := &Domain{base: base{opFlags: ops}, Names: map[string]*Name{}}
	err := domainCopyable.copy(data, ops, func(field Field, v any) error {
		if handled, err := d.assignCode(field, v); handled {
			return err
		}
		switch field {
		case FieldCurrencyDefault:
			s, ok := v.(string)
			if !ok {
				return badField(field)
			}
			d.CurrencyDefault = s
		case FieldExtra:
			extra, err := extraString(v)
			if err != nil {
				return badField(field)
			}
			d.Extra = &extra
		case FieldNames:
			names, err := namesFromValue(v, ops, rules)
			if err != nil {
				return err
			}
			d.Names = names
		case FieldRevision:
			s, ok := v.(string)
			if !ok {
				return badField(field)
			}
			d.Revision = s
		case FieldSubJournals:
			b, ok := boolValue(v)
			if !ok {
				return badField(field)
			}
			d.SubJournals = &b
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ops.Has(FlagValidate) {
		if err := d.Validate(ops, rules); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Validate checks codes, the default currency and names.
func (d *Domain) Validate(ops OpFlags, rules *domain.LedgerRules) error {
	ops = d.resolveOps(ops)
	if rules == nil {
		return apperrors.New(apperrors.KindBadRequest, uninitialized())
	}
	errs := d.validateCodes(ops, rules.Codes)
	if d.CurrencyDefault != "" {
		d.CurrencyDefault = strings.ToUpper(d.CurrencyDefault)
		if err := validation.Validate(d.CurrencyDefault, validation.Match(currencyCode)); err != nil {
			errs = append(errs, i18n.T("Currency code %s is not valid.", d.CurrencyDefault))
		}
	}
	if ops.Has(OpAdd) && len(d.Names) == 0 {
		errs = append(errs, i18n.T("must provide at least %d name %s", 1, "entry"))
	}
	if ops.Has(OpUpdate|OpDelete) && d.Revision == "" {
		errs = append(errs, i18n.T("A revision code is required."))
	}
	if len(errs) != 0 {
		return apperrors.New(apperrors.KindBadRequest, errs...)
	}
	return validateNames(d.Names, ops, rules)
}
