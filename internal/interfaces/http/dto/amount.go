package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/ledgeranchor/backend/internal/domain/ledger"
)

// LenientAmount decodes a JSON number, numeric string, empty string or null
// into a decimal. Anything that does not parse as a number decodes to zero.
type LenientAmount struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler
func (a *LenientAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		a.Decimal = ledger.CoerceAmount(text)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = ledger.CoerceAmount(string(data))
	return nil
}

// MarshalJSON writes the amount as a JSON string
func (a LenientAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Decimal.String())
}

// Amount returns the wrapped decimal
func (a LenientAmount) Amount() decimal.Decimal {
	return a.Decimal
}

// NewLenientAmount wraps d
func NewLenientAmount(d decimal.Decimal) LenientAmount {
	return LenientAmount{Decimal: d}
}
