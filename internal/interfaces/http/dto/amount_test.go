package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLenientAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"number", `12.5`, "12.5"},
		{"integer", `100`, "100"},
		{"numeric string", `"250.75"`, "250.75"},
		{"padded string", `" 3.10 "`, "3.1"},
		{"empty string", `""`, "0"},
		{"null", `null`, "0"},
		{"garbage string", `"abc"`, "0"},
		{"negative", `"-4"`, "-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a LenientAmount
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))
			assert.True(t, a.Amount().Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", a.Amount(), tt.expected)
		})
	}
}

func TestLenientAmount_InStruct(t *testing.T) {
	var line EntryLineRequest
	require.NoError(t, json.Unmarshal([]byte(`{"account_code":"512","credit":"9"}`), &line))

	assert.True(t, line.Debit.Amount().IsZero())
	assert.True(t, line.Credit.Amount().Equal(decimal.NewFromInt(9)))
}

func TestLenientAmount_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewLenientAmount(decimal.RequireFromString("1.50")))
	require.NoError(t, err)
	assert.JSONEq(t, `"1.5"`, string(data))
}

func TestCreateEntryRequest_ToCommand(t *testing.T) {
	ref := "INV-1"
	req := CreateEntryRequest{
		OrgID:       "org",
		JournalCode: "GEN",
		EntryDate:   "2024-01-31",
		Ref:         &ref,
		Lines: []EntryLineRequest{
			{AccountCode: "512", Debit: NewLenientAmount(decimal.NewFromInt(5)), Currency: "EUR"},
			{AccountCode: "706", Credit: NewLenientAmount(decimal.NewFromInt(5)), Analytic: "shop"},
		},
	}

	cmd := req.ToCommand()

	assert.Equal(t, "GEN", cmd.JournalCode)
	assert.Equal(t, &ref, cmd.Ref)
	require.Len(t, cmd.Lines, 2)
	assert.Equal(t, "EUR", cmd.Lines[0].Currency)
	assert.True(t, cmd.Lines[0].Debit.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "shop", cmd.Lines[1].Analytic)
}
