package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EncodeKeysetToken creates an opaque token from the sort key of the last row
// of a page. Fields may contain any character.
func EncodeKeysetToken(fields ...string) string {
	raw, _ := json.Marshal(fields) // a []string always marshals
	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeKeysetToken decodes a token produced by EncodeKeysetToken and checks
// that it carries exactly want fields.
func DecodeKeysetToken(token string, want int) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	var fields []string
	if err := json.Unmarshal(decodedBytes, &fields); err != nil {
		return nil, fmt.Errorf("invalid pagination token format (fields): %w", err)
	}
	if len(fields) != want {
		return nil, fmt.Errorf("invalid pagination token format (expected %d fields, got %d)", want, len(fields))
	}
	return fields, nil
}
