package messages

import (
	"regexp"
	"strings"

	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const maxCodeLength = 128

// anyCode accepts any code and preserves its case.
var anyCode = domain.CodeRules{Pattern: `.*`, Uppercase: false}

// codeFields are the identifier fields shared by coded messages.
type codeFields struct {
	Code   string
	ToCode string
	UUID   string
}

// validateCodes normalizes case and checks code, toCode and uuid against the
// rules. It returns the list of problems found.
func (c *codeFields) validateCodes(ops OpFlags, rules domain.CodeRules) []string {
	var errs []string
	if rules.Uppercase {
		c.Code = strings.ToUpper(c.Code)
		c.ToCode = strings.ToUpper(c.ToCode)
	}
	re, err := regexp.Compile(rules.Pattern)
	if err != nil {
		return []string{i18n.T("Code pattern %s is not a valid expression.", rules.Pattern)}
	}
	codeRules := []validation.Rule{
		validation.RuneLength(1, maxCodeLength),
		validation.Match(re),
	}

	switch {
	case c.Code != "":
		if err := validation.Validate(c.Code, codeRules...); err != nil {
			errs = append(errs, i18n.T("Code %s is not valid: %s.", c.Code, err.Error()))
		}
	case ops.Has(OpAdd):
		errs = append(errs, i18n.T("The code property is required."))
	case c.UUID == "" && !ops.Has(OpQuery):
		errs = append(errs, i18n.T("Must provide either a code or uuid property."))
	}

	if c.ToCode != "" {
		if err := validation.Validate(c.ToCode, codeRules...); err != nil {
			errs = append(errs, i18n.T("New code %s is not valid: %s.", c.ToCode, err.Error()))
		}
	}
	if c.UUID != "" {
		if _, err := uuid.Parse(c.UUID); err != nil {
			errs = append(errs, i18n.T("Invalid uuid %s.", c.UUID))
		}
	}
	return errs
}

// assignCode handles the code, toCode and uuid fields for a copy routine.
func (c *codeFields) assignCode(field Field, v any) (bool, error) {
	switch field {
	case FieldCode, FieldToCode:
		s, ok := scalarString(v)
		if !ok {
			return true, badField(field)
		}
		if field == FieldCode {
			c.Code = s
		} else {
			c.ToCode = s
		}
		return true, nil
	case FieldUUID:
		s, ok := v.(string)
		if !ok {
			return true, badField(field)
		}
		c.UUID = s
		return true, nil
	}
	return false, nil
}
