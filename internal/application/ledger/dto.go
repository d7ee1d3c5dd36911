package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgeranchor/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// ===================== Request DTOs =====================

// EntryLineInput is one proposed line of an entry
type EntryLineInput struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Currency    string
	Description string
	Analytic    string
}

// RecordEntryRequest is the input of RecordEntry
type RecordEntryRequest struct {
	OrgID       string
	JournalCode string
	EntryDate   string
	Ref         *string
	Lines       []EntryLineInput
}

// ReconcileRequest is the input of Reconcile. A nil confidence uses the configured default.
type ReconcileRequest struct {
	OrgID      string
	TxID       string
	EntryID    string
	Confidence *int
}

// AnchorPeriodRequest is the input of AnchorPeriod
type AnchorPeriodRequest struct {
	OrgID       string
	Period      string
	NetworkName string
}

// SimulateTransactionRequest is the input of SimulateTransaction
type SimulateTransactionRequest struct {
	OrgID       string
	NetworkName string
	ChainID     int64
	TokenSymbol string
	Decimals    int
	FromAddr    string
	ToAddr      string
	Amount      decimal.Decimal
}

// ===================== Response DTOs =====================

// RecordEntryResponse carries the id of a recorded entry
type RecordEntryResponse struct {
	ID uuid.UUID `json:"id"`
}

// EntrySummaryResponse is an entry in the recent entries list
type EntrySummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	EntryDate   string    `json:"entry_date"`
	Ref         *string   `json:"ref"`
	JournalCode string    `json:"journal_code"`
}

// CashflowAccountResponse is one cash account movement
type CashflowAccountResponse struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
	Net    decimal.Decimal `json:"net"`
}

// CashflowResponse is the cashflow statement
type CashflowResponse struct {
	Inflows   decimal.Decimal           `json:"inflows"`
	Outflows  decimal.Decimal           `json:"outflows"`
	NetChange decimal.Decimal           `json:"net_change"`
	Accounts  []CashflowAccountResponse `json:"accounts"`
}

// ProfitLossItemResponse is one revenue or expense account
type ProfitLossItemResponse struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse is the profit and loss statement
type ProfitAndLossResponse struct {
	RevenueTotal decimal.Decimal          `json:"revenue_total"`
	ExpenseTotal decimal.Decimal          `json:"expense_total"`
	Net          decimal.Decimal          `json:"net"`
	Revenues     []ProfitLossItemResponse `json:"revenues"`
	Expenses     []ProfitLossItemResponse `json:"expenses"`
}

// BalanceSheetItemResponse is one labeled balance sheet position
type BalanceSheetItemResponse struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceSheetResponse is the balance sheet
type BalanceSheetResponse struct {
	Assets           []BalanceSheetItemResponse `json:"assets"`
	Liabilities      []BalanceSheetItemResponse `json:"liabilities"`
	TotalAssets      decimal.Decimal            `json:"total_assets"`
	TotalLiabilities decimal.Decimal            `json:"total_liabilities"`
	Balance          decimal.Decimal            `json:"balance"`
	Balanced         bool                       `json:"balanced"`
}

// StatementsResponse bundles the derived statements of an organization
type StatementsResponse struct {
	OrgID         uuid.UUID             `json:"org_id"`
	LineCount     int                   `json:"line_count"`
	Cashflow      CashflowResponse      `json:"cashflow"`
	ProfitAndLoss ProfitAndLossResponse `json:"pnl"`
	BalanceSheet  BalanceSheetResponse  `json:"balance_sheet"`
	Warnings      []string              `json:"warnings,omitempty"`
	GeneratedAt   time.Time             `json:"generated_at"`
}

// ReconcileResponse carries the created link
type ReconcileResponse struct {
	ID         uuid.UUID `json:"id"`
	OrgID      uuid.UUID `json:"org_id"`
	TxID       uuid.UUID `json:"tx_id"`
	EntryID    uuid.UUID `json:"entry_id"`
	Confidence int       `json:"confidence"`
}

// AnchorResponse describes a period anchor
type AnchorResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrgID       uuid.UUID  `json:"org_id"`
	Period      string     `json:"period"`
	Commitment  string     `json:"commitment"`
	EntryCount  int        `json:"entry_count"`
	ExternalRef string     `json:"external_ref"`
	AnchorTxRef string     `json:"anchor_tx_ref"`
	NetworkID   *uuid.UUID `json:"network_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AnchorVerificationResponse reports whether a stored commitment still matches the ledger
type AnchorVerificationResponse struct {
	AnchorID          uuid.UUID `json:"anchor_id"`
	Period            string    `json:"period"`
	StoredCommitment  string    `json:"stored_commitment"`
	CurrentCommitment string    `json:"current_commitment"`
	StoredEntryCount  int       `json:"stored_entry_count"`
	CurrentEntryCount int       `json:"current_entry_count"`
	Valid             bool      `json:"valid"`
}

// TransactionResponse describes an external transaction
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrgID       uuid.UUID       `json:"org_id,omitempty"`
	TxHash      string          `json:"tx_hash,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	FromAddr    string          `json:"from_addr"`
	ToAddr      string          `json:"to_addr"`
	BlockNumber int64           `json:"block_number,omitempty"`
	BlockTime   time.Time       `json:"block_time"`
	Status      string          `json:"status"`
	TokenSymbol string          `json:"token_symbol"`
	NetworkName *string         `json:"network_name"`
}

// OrganizationResponse is an organization option
type OrganizationResponse struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

// ===================== Mapping =====================

func toStatementsResponse(orgID uuid.UUID, lineCount int, st ledger.Statements, now time.Time) *StatementsResponse {
	resp := &StatementsResponse{
		OrgID:       orgID,
		LineCount:   lineCount,
		GeneratedAt: now,
		Cashflow: CashflowResponse{
			Inflows:   st.Cashflow.Inflows,
			Outflows:  st.Cashflow.Outflows,
			NetChange: st.Cashflow.NetChange,
			Accounts:  make([]CashflowAccountResponse, 0, len(st.Cashflow.Accounts)),
		},
		ProfitAndLoss: ProfitAndLossResponse{
			RevenueTotal: st.ProfitAndLoss.RevenueTotal,
			ExpenseTotal: st.ProfitAndLoss.ExpenseTotal,
			Net:          st.ProfitAndLoss.Net,
			Revenues:     toProfitLossItems(st.ProfitAndLoss.Revenues),
			Expenses:     toProfitLossItems(st.ProfitAndLoss.Expenses),
		},
		BalanceSheet: BalanceSheetResponse{
			Assets:           toBalanceSheetItems(st.BalanceSheet.Assets),
			Liabilities:      toBalanceSheetItems(st.BalanceSheet.Liabilities),
			TotalAssets:      st.BalanceSheet.TotalAssets,
			TotalLiabilities: st.BalanceSheet.TotalLiabilities,
			Balance:          st.BalanceSheet.Balance,
			Balanced:         st.BalanceSheet.IsBalanced(),
		},
	}
	for _, a := range st.Cashflow.Accounts {
		resp.Cashflow.Accounts = append(resp.Cashflow.Accounts, CashflowAccountResponse{
			Code:   a.Code,
			Name:   a.Name,
			Debit:  a.Debit,
			Credit: a.Credit,
			Net:    a.Net,
		})
	}
	return resp
}

func toProfitLossItems(items []ledger.ProfitLossItem) []ProfitLossItemResponse {
	out := make([]ProfitLossItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ProfitLossItemResponse{Code: item.Code, Name: item.Name, Amount: item.Amount})
	}
	return out
}

func toBalanceSheetItems(items []ledger.BalanceSheetItem) []BalanceSheetItemResponse {
	out := make([]BalanceSheetItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, BalanceSheetItemResponse{Key: item.Key, Label: item.Label, Amount: item.Amount})
	}
	return out
}

func toAnchorResponse(a *ledger.PeriodAnchor) *AnchorResponse {
	return &AnchorResponse{
		ID:          a.ID,
		OrgID:       a.OrgID,
		Period:      a.Period,
		Commitment:  a.Commitment,
		EntryCount:  a.EntryCount,
		ExternalRef: a.ExternalRef,
		AnchorTxRef: a.AnchorTxRef,
		NetworkID:   a.NetworkID,
		CreatedAt:   a.CreatedAt,
	}
}
