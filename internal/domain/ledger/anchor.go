package ledger

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/shared"
)

var periodPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// Period is a calendar month, written "YYYY-MM"
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a "YYYY-MM" period
func ParsePeriod(s string) (Period, error) {
	m := periodPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Period{}, shared.NewValidationError("period must be formatted as YYYY-MM")
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return Period{}, shared.NewValidationError("period month must be between 01 and 12")
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// Start returns the first day of the period
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first day of the following month (exclusive bound)
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// String returns the "YYYY-MM" form
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// canonicalHeader fixes the key order of the hashed entry projection
type canonicalHeader struct {
	ID        string  `json:"id"`
	EntryDate string  `json:"entry_date"`
	Ref       *string `json:"ref"`
	OrgID     string  `json:"org_id"`
}

// CanonicalJSON returns the serialization of the entry header that is hashed
// into a leaf digest. Line-level detail is not part of it.
func CanonicalJSON(h EntryHeader) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(canonicalHeader{
		ID:        h.ID.String(),
		EntryDate: h.Date.Format(DateLayout),
		Ref:       h.Ref,
		OrgID:     h.OrgID.String(),
	}); err != nil {
		return nil, fmt.Errorf("encode entry header: %w", err)
	}
	return rawLineSeparators(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// rawLineSeparators writes U+2028 and U+2029 unescaped, as JSON.stringify
// does. Escapes preceded by an escaped backslash are left alone.
func rawLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' && i+5 < len(data) && data[i+1] == 'u' &&
			string(data[i+2:i+5]) == "202" && (data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i])
		if data[i] == '\\' && i+1 < len(data) {
			i++
			out = append(out, data[i])
		}
	}
	return out
}

// LeafDigest is the hex SHA-256 of the canonical entry header
func LeafDigest(h EntryHeader) (string, error) {
	data, err := CanonicalJSON(h)
	if err != nil {
		return "", err
	}
	return sha256Hex(data), nil
}

// ChainedDigest computes the period commitment: the hex SHA-256 of the
// concatenated hex leaf digests, in the given (date ascending) order.
// It is a flat chain, not a Merkle tree, so no inclusion proof exists for a
// single entry. An empty list yields the digest of the empty string.
func ChainedDigest(headers []EntryHeader) (string, error) {
	var sb strings.Builder
	sb.Grow(len(headers) * sha256.Size * 2)
	for _, h := range headers {
		leaf, err := LeafDigest(h)
		if err != nil {
			return "", err
		}
		sb.WriteString(leaf)
	}
	return sha256Hex([]byte(sb.String())), nil
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// PeriodAnchor records the commitment computed for an organization's period.
// A new anchor is created on every call; anchors for the same period are not deduplicated.
type PeriodAnchor struct {
	shared.BaseEntity
	OrgID       uuid.UUID
	Period      string
	Commitment  string
	EntryCount  int
	ExternalRef string
	NetworkID   *uuid.UUID
	AnchorTxRef string
}

// NewPeriodAnchor creates an anchor record for a computed commitment
func NewPeriodAnchor(orgID uuid.UUID, period Period, commitment string, entryCount int, networkID *uuid.UUID) *PeriodAnchor {
	return &PeriodAnchor{
		BaseEntity: shared.NewBaseEntity(),
		OrgID:      orgID,
		Period:     period.String(),
		Commitment: commitment,
		EntryCount: entryCount,
		NetworkID:  networkID,
	}
}

// AnchorVerification compares a stored commitment with one recomputed from current entries
type AnchorVerification struct {
	AnchorID          uuid.UUID
	Period            string
	StoredCommitment  string
	CurrentCommitment string
	StoredEntryCount  int
	CurrentEntryCount int
}

// Matches reports whether the period's entries still produce the stored commitment
func (v AnchorVerification) Matches() bool {
	return v.StoredCommitment == v.CurrentCommitment
}
