package messages

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// maxLanguageLength matches the ledger_names.language column.
const maxLanguageLength = 35

// NameStore persists localized names. Writes are immediate.
type NameStore interface {
	InsertName(ctx context.Context, name domain.LedgerName) error
	UpdateName(ctx context.Context, name domain.LedgerName) error
	DeleteName(ctx context.Context, ownerUUID string, language string) error
}

// Name is a localized name for an owner entity. An empty Name on update
// removes the name in that language.
type Name struct {
	base
	Language  string
	Name      string
	OwnerUUID string

	// position in the request list; a later entry wins a language collision.
	position int
}

// NewName creates a name message.
func NewName(name, language, ownerUUID string) *Name {
	return &Name{Name: name, Language: language, OwnerUUID: ownerUUID}
}

// NameFromMap populates a name from request data.
func NameFromMap(data map[string]any, ops OpFlags, rules *domain.LedgerRules) (*Name, error) {
	name := &Name{base: base{opFlags: ops}}
	if v, ok := data[string(FieldName)]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, badField(FieldName)
		}
		name.Name = s
	}
	if v, ok := data[string(FieldLanguage)]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, badField(FieldLanguage)
		}
		name.Language = s
	}
	if ops.Has(FlagValidate) {
		if err := name.Validate(ops, rules); err != nil {
			return nil, err
		}
	}
	return name, nil
}

// NamesFromRequestList builds a language keyed set of names. A later entry for
// the same language replaces an earlier one. Fewer than minimum distinct
// languages is a bad request.
func NamesFromRequestList(data []any, ops OpFlags, minimum int, rules *domain.LedgerRules) (map[string]*Name, error) {
	names := make(map[string]*Name, len(data))
	for i, item := range data {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, badField(FieldNames)
		}
		name, err := NameFromMap(entry, ops, rules)
		if err != nil {
			return nil, err
		}
		name.position = i
		names[canonicalLanguage(name.Language)] = name
	}
	if len(names) < minimum {
		entry := "entries"
		if minimum == 1 {
			entry = "entry"
		}
		return nil, apperrors.New(apperrors.KindBadRequest,
			i18n.T("must provide at least %d name %s", minimum, entry))
	}
	return names, nil
}

// Validate enforces the name rules and fills in the default language.
func (n *Name) Validate(ops OpFlags, rules *domain.LedgerRules) error {
	ops = n.resolveOps(ops)
	if n.Name == "" && !ops.Has(OpUpdate) {
		return apperrors.New(apperrors.KindRuleViolation, i18n.T("Must include name property."))
	}
	if rules == nil {
		return apperrors.New(apperrors.KindBadRequest, uninitialized())
	}
	defaultLanguage := canonicalLanguage(rules.Language.Default)
	if n.Language == "" {
		n.Language = defaultLanguage
	}
	if n.Language == "" {
		return apperrors.New(apperrors.KindRuleViolation, i18n.T("Language cannot be empty."))
	}
	canonical, err := i18n.ParseLanguage(n.Language)
	if err != nil {
		return apperrors.New(apperrors.KindRuleViolation, i18n.T("Language %s is not a valid language tag.", n.Language))
	}
	if err := validation.Validate(canonical, validation.RuneLength(1, maxLanguageLength)); err != nil {
		return apperrors.New(apperrors.KindRuleViolation,
			i18n.T("Language %s is longer than %d characters.", n.Language, maxLanguageLength))
	}
	n.Language = canonical
	// An empty name here can only be an update removing this language.
	if n.Name == "" && n.Language == defaultLanguage {
		return apperrors.New(apperrors.KindRuleViolation, i18n.T("Cannot delete name in default language."))
	}
	return nil
}

// ApplyTo adds, updates or deletes this name on owner.
func (n *Name) ApplyTo(ctx context.Context, owner domain.NameOwner, store NameStore) error {
	existing := domain.FindName(owner, n.Language)
	if n.Name == "" {
		if existing == nil {
			return nil
		}
		if err := store.DeleteName(ctx, owner.OwnerUUID(), n.Language); err != nil {
			return fmt.Errorf("failed to delete %s name of %s: %w", n.Language, owner.OwnerUUID(), err)
		}
		return nil
	}
	if existing == nil {
		err := store.InsertName(ctx, domain.LedgerName{
			OwnerUUID: owner.OwnerUUID(),
			Language:  n.Language,
			Name:      n.Name,
		})
		if err != nil {
			return fmt.Errorf("failed to add %s name to %s: %w", n.Language, owner.OwnerUUID(), err)
		}
		return nil
	}
	updated := *existing
	updated.Name = n.Name
	if err := store.UpdateName(ctx, updated); err != nil {
		return fmt.Errorf("failed to update %s name of %s: %w", n.Language, owner.OwnerUUID(), err)
	}
	return nil
}

func canonicalLanguage(tag string) string {
	if tag == "" {
		return ""
	}
	if canonical, err := i18n.ParseLanguage(tag); err == nil {
		return canonical
	}
	return tag
}

// namesFromValue decodes a names property for a copy routine.
func namesFromValue(v any, ops OpFlags, rules *domain.LedgerRules) (map[string]*Name, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, badField(FieldNames)
	}
	minimum := 0
	if ops.Has(OpAdd) {
		minimum = 1
	}
	return NamesFromRequestList(list, ops, minimum, rules)
}
