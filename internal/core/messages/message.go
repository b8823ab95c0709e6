// Package messages turns decoded request data into typed, validated ledger
// operations.
//
// Every request is tagged with exactly one primary operation (add, get, update,
// delete or query) for its lifetime. The operation decides which fields may be
// populated, through a static table per message type, and which validation
// rules apply. The FlagValidate modifier makes construction validate
// immediately, so callers never hold a partially validated message.
package messages

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/core/domain"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
)

// OpFlags is a bitmask holding the primary operation of a request and modifiers.
type OpFlags uint32

const (
	OpAdd OpFlags = 1 << iota
	OpRetrieve
	OpUpdate
	OpDelete
	OpQuery
)

// FlagValidate makes FromMap validate the message as soon as it is populated.
const FlagValidate OpFlags = 1 << 8

// OpAll matches every primary operation.
const OpAll = OpAdd | OpRetrieve | OpUpdate | OpDelete | OpQuery

var operationNames = map[string]OpFlags{
	"add":    OpAdd,
	"get":    OpRetrieve,
	"update": OpUpdate,
	"delete": OpDelete,
	"query":  OpQuery,
}

// ParseOperation maps a transport level operation name to its flag.
func ParseOperation(name string) (OpFlags, error) {
	op, ok := operationNames[strings.ToLower(name)]
	if !ok {
		return 0, apperrors.New(apperrors.KindBadRequest, i18n.T("Unknown operation %q.", name))
	}
	return op, nil
}

// Has reports whether any bit of flag is set.
func (f OpFlags) Has(flag OpFlags) bool {
	return f&flag != 0
}

// Operation strips modifiers, leaving the primary operation.
func (f OpFlags) Operation() OpFlags {
	return f & OpAll
}

func (f OpFlags) String() string {
	for name, op := range operationNames {
		if f.Operation() == op {
			return name
		}
	}
	return fmt.Sprintf("ops(%d)", uint32(f))
}

// Message is implemented by every request message.
type Message interface {
	// OpFlags returns the flags the message was built with.
	OpFlags() OpFlags
	// Validate enforces field rules and fills defaults in place. A zero ops
	// falls back to the flags the message was built with.
	Validate(ops OpFlags, rules *domain.LedgerRules) error
}

type base struct {
	opFlags OpFlags
}

func (b *base) OpFlags() OpFlags {
	return b.opFlags
}

func (b *base) resolveOps(ops OpFlags) OpFlags {
	if ops == 0 {
		return b.opFlags
	}
	return ops
}

// Field names a copyable request property.
type Field string

const (
	FieldCode            Field = "code"
	FieldCurrencyDefault Field = "currencyDefault"
	FieldExtra           Field = "extra"
	FieldLanguage        Field = "language"
	FieldName            Field = "name"
	FieldNames           Field = "names"
	FieldRevision        Field = "revision"
	FieldSubJournals     Field = "subJournals"
	FieldToCode          Field = "toCode"
	FieldUUID            Field = "uuid"
)

type copyRule struct {
	field Field
	ops   OpFlags
}

// copyTable lists the fields a message may populate and the operations in
// which each one is legal.
type copyTable []copyRule

// copy hands every present, legal field of data to assign. Unknown keys and
// fields not legal for the operation are skipped.
func (t copyTable) copy(data map[string]any, ops OpFlags, assign func(Field, any) error) error {
	op := ops.Operation()
	for _, rule := range t {
		value, ok := data[string(rule.field)]
		if !ok || value == nil || rule.ops&op == 0 {
			continue
		}
		if err := assign(rule.field, value); err != nil {
			return err
		}
	}
	return nil
}

func badField(field Field) error {
	return apperrors.New(apperrors.KindBadRequest, i18n.T("Property %s has an invalid type.", string(field)))
}

// scalarString converts a decoded scalar (string or number) to a string.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

// extraString stores application data verbatim when it is a string and as
// JSON otherwise.
func extraString(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func boolValue(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(t)
		return b, err == nil
	}
	return false, false
}

func uninitialized() string {
	return i18n.T("Ledger has not been initialized.")
}
