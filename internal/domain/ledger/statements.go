package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AccountLine is an entry line joined with its account code and name
type AccountLine struct {
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	AccountCode string
	AccountName string
}

// CashflowAccount is the movement of one cash account
type CashflowAccount struct {
	Code   string
	Name   string
	Debit  decimal.Decimal
	Credit decimal.Decimal
	Net    decimal.Decimal
}

// Cashflow summarizes movements on class 5 accounts
type Cashflow struct {
	Inflows   decimal.Decimal
	Outflows  decimal.Decimal
	NetChange decimal.Decimal
	Accounts  []CashflowAccount
}

// ProfitLossItem is the accumulated amount of one revenue or expense account
type ProfitLossItem struct {
	Code   string
	Name   string
	Amount decimal.Decimal
}

// ProfitAndLoss summarizes class 7 revenues against class 6 expenses
type ProfitAndLoss struct {
	RevenueTotal decimal.Decimal
	ExpenseTotal decimal.Decimal
	Net          decimal.Decimal
	Revenues     []ProfitLossItem
	Expenses     []ProfitLossItem
}

// BalanceSheetItem is one labeled line of the balance sheet
type BalanceSheetItem struct {
	Key    string
	Label  string
	Amount decimal.Decimal
}

// Balance sheet item keys
const (
	ItemFixedAssets = "fixed_assets"
	ItemInventory   = "inventory"
	ItemReceivables = "receivables"
	ItemCash        = "cash"
	ItemEquity      = "equity"
	ItemNetResult   = "net_result"
	ItemPayables    = "payables"
)

// BalanceSheet lists assets against equity and liabilities
type BalanceSheet struct {
	Assets           []BalanceSheetItem
	Liabilities      []BalanceSheetItem
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	Balance          decimal.Decimal
}

// IsBalanced reports whether assets equal liabilities after rounding.
// An unbalanced sheet is a warning for the caller, not an error.
func (b *BalanceSheet) IsBalanced() bool {
	return b.Balance.IsZero()
}

// Statements bundles the three derived reports
type Statements struct {
	Cashflow      Cashflow
	ProfitAndLoss ProfitAndLoss
	BalanceSheet  BalanceSheet
}

// noiseThreshold drops balance sheet items whose rounded amount is at most one cent
var noiseThreshold = decimal.New(1, -2)

// DeriveStatements computes cashflow, P&L and balance sheet from the same lines,
// folding the P&L net result into the balance sheet.
func DeriveStatements(lines []AccountLine) Statements {
	pnl := ComputeProfitAndLoss(lines)
	return Statements{
		Cashflow:      ComputeCashflow(lines),
		ProfitAndLoss: pnl,
		BalanceSheet:  ComputeBalanceSheet(lines, pnl.Net),
	}
}

// ComputeCashflow groups cash account lines by code, sorted ascending.
func ComputeCashflow(lines []AccountLine) Cashflow {
	type group struct {
		name          string
		debit, credit decimal.Decimal
	}
	groups := make(map[string]*group)
	for _, l := range lines {
		if ClassifyAccount(l.AccountCode) != ClassCash {
			continue
		}
		g, ok := groups[l.AccountCode]
		if !ok {
			g = &group{name: accountName(l), debit: decimal.Zero, credit: decimal.Zero}
			groups[l.AccountCode] = g
		}
		g.debit = g.debit.Add(l.Debit)
		g.credit = g.credit.Add(l.Credit)
	}

	inflows, outflows := decimal.Zero, decimal.Zero
	accounts := make([]CashflowAccount, 0, len(groups))
	for _, code := range sortedKeys(groups) {
		g := groups[code]
		net := g.debit.Sub(g.credit)
		if net.IsPositive() {
			inflows = inflows.Add(net)
		} else if net.IsNegative() {
			outflows = outflows.Add(net.Abs())
		}
		accounts = append(accounts, CashflowAccount{
			Code:   code,
			Name:   g.name,
			Debit:  Round2(g.debit),
			Credit: Round2(g.credit),
			Net:    Round2(net),
		})
	}

	return Cashflow{
		Inflows:   Round2(inflows),
		Outflows:  Round2(outflows),
		NetChange: Round2(inflows.Sub(outflows)),
		Accounts:  accounts,
	}
}

// ComputeProfitAndLoss accumulates revenue (credit - debit) and expense
// (debit - credit) per account code, dropping codes that net to zero.
func ComputeProfitAndLoss(lines []AccountLine) ProfitAndLoss {
	type group struct {
		name   string
		amount decimal.Decimal
	}
	revenues := make(map[string]*group)
	expenses := make(map[string]*group)

	for _, l := range lines {
		var target map[string]*group
		var amount decimal.Decimal
		switch ClassifyAccount(l.AccountCode) {
		case ClassRevenue:
			target, amount = revenues, l.Credit.Sub(l.Debit)
		case ClassExpense:
			target, amount = expenses, l.Debit.Sub(l.Credit)
		default:
			continue
		}
		g, ok := target[l.AccountCode]
		if !ok {
			g = &group{name: accountName(l), amount: decimal.Zero}
			target[l.AccountCode] = g
		}
		g.amount = g.amount.Add(amount)
	}

	collect := func(groups map[string]*group) ([]ProfitLossItem, decimal.Decimal) {
		items := make([]ProfitLossItem, 0, len(groups))
		total := decimal.Zero
		for _, code := range sortedKeys(groups) {
			g := groups[code]
			if IsNegligible(g.amount) {
				continue
			}
			amount := Round2(g.amount)
			items = append(items, ProfitLossItem{Code: code, Name: g.name, Amount: amount})
			total = total.Add(amount)
		}
		return items, Round2(total)
	}

	revenueItems, revenueTotal := collect(revenues)
	expenseItems, expenseTotal := collect(expenses)
	return ProfitAndLoss{
		RevenueTotal: revenueTotal,
		ExpenseTotal: expenseTotal,
		Net:          Round2(revenueTotal.Sub(expenseTotal)),
		Revenues:     revenueItems,
		Expenses:     expenseItems,
	}
}

// ComputeBalanceSheet accumulates the balance sheet positions in one pass.
// Class 4 lines are split per line: a debit balance is a receivable,
// a credit balance a payable. netResult is the P&L net of the same lines.
func ComputeBalanceSheet(lines []AccountLine, netResult decimal.Decimal) BalanceSheet {
	equity := decimal.Zero
	fixedAssets := decimal.Zero
	inventory := decimal.Zero
	receivables := decimal.Zero
	payables := decimal.Zero
	cash := decimal.Zero

	for _, l := range lines {
		if l.AccountCode == "" {
			continue
		}
		switch ClassifyAccount(l.AccountCode) {
		case ClassEquityLiabilities:
			equity = equity.Add(l.Credit).Sub(l.Debit)
		case ClassFixedAssets:
			fixedAssets = fixedAssets.Add(l.Debit).Sub(l.Credit)
		case ClassInventory:
			inventory = inventory.Add(l.Debit).Sub(l.Credit)
		case ClassReceivablesPayables:
			net := l.Debit.Sub(l.Credit)
			if net.IsNegative() {
				payables = payables.Add(net.Abs())
			} else {
				receivables = receivables.Add(net)
			}
		case ClassCash:
			cash = cash.Add(l.Debit).Sub(l.Credit)
		}
	}

	assets := significantItems([]BalanceSheetItem{
		{Key: ItemFixedAssets, Label: "Fixed assets", Amount: Round2(fixedAssets)},
		{Key: ItemInventory, Label: "Inventory", Amount: Round2(inventory)},
		{Key: ItemReceivables, Label: "Receivables", Amount: Round2(receivables)},
		{Key: ItemCash, Label: "Cash", Amount: Round2(cash)},
	})
	liabilities := significantItems([]BalanceSheetItem{
		{Key: ItemEquity, Label: "Equity", Amount: Round2(equity)},
		{Key: ItemNetResult, Label: "Net result", Amount: Round2(netResult)},
		{Key: ItemPayables, Label: "Payables", Amount: Round2(payables)},
	})

	totalAssets := Round2(sumItems(assets))
	totalLiabilities := Round2(sumItems(liabilities))
	return BalanceSheet{
		Assets:           assets,
		Liabilities:      liabilities,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		Balance:          Round2(totalAssets.Sub(totalLiabilities)),
	}
}

func significantItems(items []BalanceSheetItem) []BalanceSheetItem {
	kept := make([]BalanceSheetItem, 0, len(items))
	for _, item := range items {
		if item.Amount.Abs().GreaterThan(noiseThreshold) {
			kept = append(kept, item)
		}
	}
	return kept
}

func sumItems(items []BalanceSheetItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

func accountName(l AccountLine) string {
	if l.AccountName != "" {
		return l.AccountName
	}
	return "Account " + l.AccountCode
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
