package ledger

// AccountClass is the financial-statement category of an account,
// derived from the leading character of its code.
type AccountClass string

const (
	ClassEquityLiabilities   AccountClass = "EQUITY_LIABILITIES"   // 1: equity and non-current liabilities
	ClassFixedAssets         AccountClass = "FIXED_ASSETS"         // 2
	ClassInventory           AccountClass = "INVENTORY"            // 3
	ClassReceivablesPayables AccountClass = "RECEIVABLES_PAYABLES" // 4: sign decides the side
	ClassCash                AccountClass = "CASH"                 // 5
	ClassExpense             AccountClass = "EXPENSE"              // 6
	ClassRevenue             AccountClass = "REVENUE"              // 7
	ClassUnclassified        AccountClass = "UNCLASSIFIED"
)

// accountClassTable is the single source of truth for code-prefix classification.
var accountClassTable = map[byte]AccountClass{
	'1': ClassEquityLiabilities,
	'2': ClassFixedAssets,
	'3': ClassInventory,
	'4': ClassReceivablesPayables,
	'5': ClassCash,
	'6': ClassExpense,
	'7': ClassRevenue,
}

// ClassifyAccount maps an account code to its class. Codes are compared as raw
// strings, so "5121" and "512" are both cash. Unknown or empty codes are unclassified.
func ClassifyAccount(code string) AccountClass {
	if code == "" {
		return ClassUnclassified
	}
	if class, ok := accountClassTable[code[0]]; ok {
		return class
	}
	return ClassUnclassified
}

// String returns the string representation
func (c AccountClass) String() string {
	return string(c)
}
