package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	// EntrySourceAPI is the provenance marker stored on entries recorded through this service
	EntrySourceAPI = "api"
	// DefaultCurrency is applied to lines submitted without a currency
	DefaultCurrency = "EUR"
	// DateLayout is the calendar-day format of entry dates
	DateLayout = "2006-01-02"
	// AmountScale is the number of decimal places stored for line amounts
	AmountScale = 4
)

// Entry is one balanced double-entry accounting transaction.
// Entries are append-only: once persisted they are never updated or deleted.
type Entry struct {
	shared.BaseEntity
	OrgID       uuid.UUID
	JournalID   uuid.UUID
	JournalCode string
	Date        time.Time
	Ref         *string
	Source      string
	Lines       []Line
}

// Line is one debit or credit movement against a single account.
// A line is exclusively owned by its entry.
type Line struct {
	ID          uuid.UUID
	EntryID     uuid.UUID
	OrgID       uuid.UUID
	AccountID   uuid.UUID
	AccountCode string
	Position    int
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Currency    string
	Description *string
	Analytic    *string
}

// TotalDebit returns the sum of line debits
func (e *Entry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// EntryHeader is the projection of an entry covered by a period commitment
type EntryHeader struct {
	ID    uuid.UUID
	Date  time.Time
	Ref   *string
	OrgID uuid.UUID
}

// EntrySummary is a list view of an entry with its journal code
type EntrySummary struct {
	ID          uuid.UUID
	Date        time.Time
	Ref         *string
	JournalCode string
	CreatedAt   time.Time
}

// LineDraft is a proposed line before account resolution
type LineDraft struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Currency    string
	Description string
	Analytic    string
}

// EntryDraft is a proposed entry before journal and account resolution
type EntryDraft struct {
	OrgID       uuid.UUID
	JournalCode string
	Date        string
	Ref         *string
	Lines       []LineDraft

	entryDate time.Time
}

// Validate checks required fields, the double-entry balance and then line
// shape. A debit/credit mismatch returns an imbalanced-entry error before any
// per-line problem is reported; everything else is a validation error.
func (d *EntryDraft) Validate() error {
	if d.OrgID == uuid.Nil {
		return shared.NewValidationError("org_id is required")
	}
	if strings.TrimSpace(d.JournalCode) == "" {
		return shared.NewValidationError("journal_code is required")
	}
	if strings.TrimSpace(d.Date) == "" {
		return shared.NewValidationError("entry_date is required")
	}
	if len(d.Lines) == 0 {
		return shared.NewValidationError("at least one line is required")
	}

	debit, credit := d.Totals()
	if !IsNegligible(debit.Sub(credit)) {
		return shared.NewImbalancedEntryError("debit total %s does not equal credit total %s", debit, credit)
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(d.Date))
	if err != nil {
		return shared.NewValidationError("entry_date must be formatted as YYYY-MM-DD")
	}
	d.entryDate = date

	for i := range d.Lines {
		line := &d.Lines[i]
		if strings.TrimSpace(line.AccountCode) == "" {
			return shared.NewValidationError("line %d: account_code is required", i+1)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return shared.NewValidationError("line %d: amounts must not be negative", i+1)
		}
		if !fitsAmountScale(line.Debit) || !fitsAmountScale(line.Credit) {
			return shared.NewValidationError("line %d: amounts allow at most %d decimal places", i+1, AmountScale)
		}
		code, err := normalizeCurrency(line.Currency)
		if err != nil {
			return shared.NewValidationError("line %d: unknown currency %q", i+1, line.Currency)
		}
		line.Currency = code
	}
	return nil
}

// Totals returns the debit and credit sums of the draft lines
func (d *EntryDraft) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range d.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// AccountCodes returns the distinct account codes in line order
func (d *EntryDraft) AccountCodes() []string {
	seen := make(map[string]struct{}, len(d.Lines))
	codes := make([]string, 0, len(d.Lines))
	for _, l := range d.Lines {
		code := strings.TrimSpace(l.AccountCode)
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

// Build turns a validated draft into an Entry using the resolved journal and
// accounts (keyed by code). Every line code must be present in accounts.
func (d *EntryDraft) Build(journal *Journal, accounts map[string]*Account) (*Entry, error) {
	if d.entryDate.IsZero() {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}

	entry := &Entry{
		BaseEntity:  shared.NewBaseEntity(),
		OrgID:       d.OrgID,
		JournalID:   journal.ID,
		JournalCode: journal.Code,
		Date:        d.entryDate,
		Ref:         d.Ref,
		Source:      EntrySourceAPI,
		Lines:       make([]Line, 0, len(d.Lines)),
	}

	for i, l := range d.Lines {
		code := strings.TrimSpace(l.AccountCode)
		account, ok := accounts[code]
		if !ok {
			return nil, shared.NewNotFoundError("account %s not found for organization %s", code, d.OrgID)
		}
		entry.Lines = append(entry.Lines, Line{
			ID:          uuid.New(),
			EntryID:     entry.ID,
			OrgID:       d.OrgID,
			AccountID:   account.ID,
			AccountCode: account.Code,
			Position:    i,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Currency:    l.Currency,
			Description: optionalText(l.Description),
			Analytic:    optionalText(l.Analytic),
		})
	}
	return entry, nil
}

func normalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", err
	}
	return unit.String(), nil
}

func fitsAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
