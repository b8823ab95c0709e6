package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_service/internal/apperrors"
	"github.com/SscSPs/ledger_service/internal/platform/i18n"
)

// RevisionFormat is the canonical text form of a revision timestamp.
const RevisionFormat = "2006-01-02 15:04:05.000000"

// Revisable is implemented by entities that take part in optimistic concurrency.
type Revisable interface {
	// RevisionFields returns the revision relevant fields keyed by name.
	RevisionFields() map[string]string
	// RevisionTime returns the persisted revision timestamp.
	RevisionTime() time.Time
}

// Revisioned is a Revisable entity that exposes its (cached) revision hash.
type Revisioned interface {
	Revisable
	RevisionHash() string
}

// ComputeRevisionHash fingerprints the revision relevant fields of e.
// The result is independent of map ordering and of the host. Values are
// length prefixed so no two field sets share an encoding.
func ComputeRevisionHash(e Revisable) string {
	fields := e.RevisionFields()
	keys := make([]string, 0, len(fields)+1)
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("revision=")
	b.WriteString(FormatRevision(e.RevisionTime()))
	for _, k := range keys {
		b.WriteByte('\n')
		v := fields[k]
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// FormatRevision renders a revision timestamp at microsecond precision in UTC.
func FormatRevision(t time.Time) string {
	return t.UTC().Format(RevisionFormat)
}

// RevisionCache holds the lazily computed revision hash of an entity.
// The zero value is an empty cache.
type RevisionCache struct {
	hash  string
	valid bool
}

// Hash returns the cached hash of e, computing it on first use.
func (c *RevisionCache) Hash(e Revisable) string {
	if !c.valid {
		c.hash = ComputeRevisionHash(e)
		c.valid = true
	}
	return c.hash
}

// ClearRevisionCache drops the cached hash. Repositories call it after every save.
func (c *RevisionCache) ClearRevisionCache() {
	c.hash = ""
	c.valid = false
}

// CheckRevision verifies that supplied matches the current revision of e,
// either as the revision hash or as the canonical revision timestamp.
func CheckRevision(e Revisioned, supplied string) error {
	if supplied == "" {
		return apperrors.New(apperrors.KindBadRequest, i18n.T("A revision code is required."))
	}
	if supplied == e.RevisionHash() || supplied == FormatRevision(e.RevisionTime()) {
		return nil
	}
	return apperrors.New(apperrors.KindConflict,
		i18n.T("Entity has been modified since it was last read; fetch it again and resubmit."))
}
