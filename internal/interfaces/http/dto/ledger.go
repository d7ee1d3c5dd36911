package dto

import (
	ledgerapp "github.com/ledgeranchor/backend/internal/application/ledger"
)

// EntryLineRequest is one line of a CreateEntryRequest
type EntryLineRequest struct {
	AccountCode string        `json:"account_code"`
	Debit       LenientAmount `json:"debit"`
	Credit      LenientAmount `json:"credit"`
	Currency    string        `json:"currency"`
	Description string        `json:"description"`
	Analytic    string        `json:"analytic"`
}

// CreateEntryRequest is the body of POST /entries
type CreateEntryRequest struct {
	OrgID       string             `json:"org_id" binding:"required"`
	JournalCode string             `json:"journal_code" binding:"required"`
	EntryDate   string             `json:"entry_date" binding:"required"`
	Ref         *string            `json:"ref"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=1"`
}

// ToCommand converts the body to the application request
func (r CreateEntryRequest) ToCommand() ledgerapp.RecordEntryRequest {
	lines := make([]ledgerapp.EntryLineInput, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, ledgerapp.EntryLineInput{
			AccountCode: l.AccountCode,
			Debit:       l.Debit.Amount(),
			Credit:      l.Credit.Amount(),
			Currency:    l.Currency,
			Description: l.Description,
			Analytic:    l.Analytic,
		})
	}
	return ledgerapp.RecordEntryRequest{
		OrgID:       r.OrgID,
		JournalCode: r.JournalCode,
		EntryDate:   r.EntryDate,
		Ref:         r.Ref,
		Lines:       lines,
	}
}

// ReconcileRequest is the body of POST /reconcile
type ReconcileRequest struct {
	OrgID      string `json:"org_id" binding:"required"`
	TxID       string `json:"tx_id" binding:"required"`
	EntryID    string `json:"entry_id" binding:"required"`
	Confidence *int   `json:"confidence" binding:"omitempty,gte=0,lte=100"`
}

// ToCommand converts the body to the application request
func (r ReconcileRequest) ToCommand() ledgerapp.ReconcileRequest {
	return ledgerapp.ReconcileRequest{
		OrgID:      r.OrgID,
		TxID:       r.TxID,
		EntryID:    r.EntryID,
		Confidence: r.Confidence,
	}
}

// AnchorRequest is the body of POST /anchor
type AnchorRequest struct {
	OrgID       string `json:"org_id" binding:"required"`
	Period      string `json:"period" binding:"required,period"`
	NetworkName string `json:"network_name"`
}

// ToCommand converts the body to the application request
func (r AnchorRequest) ToCommand() ledgerapp.AnchorPeriodRequest {
	return ledgerapp.AnchorPeriodRequest{
		OrgID:       r.OrgID,
		Period:      r.Period,
		NetworkName: r.NetworkName,
	}
}

// SimulateTransactionRequest is the body of POST /transactions/simulate
type SimulateTransactionRequest struct {
	OrgID       string        `json:"org_id" binding:"required"`
	NetworkName string        `json:"network_name"`
	ChainID     int64         `json:"chain_id" binding:"required,gt=0"`
	TokenSymbol string        `json:"token_symbol" binding:"required"`
	Decimals    int           `json:"decimals" binding:"gte=0,lte=36"`
	FromAddr    string        `json:"from_addr"`
	ToAddr      string        `json:"to_addr"`
	Amount      LenientAmount `json:"amount"`
}

// ToCommand converts the body to the application request
func (r SimulateTransactionRequest) ToCommand() ledgerapp.SimulateTransactionRequest {
	return ledgerapp.SimulateTransactionRequest{
		OrgID:       r.OrgID,
		NetworkName: r.NetworkName,
		ChainID:     r.ChainID,
		TokenSymbol: r.TokenSymbol,
		Decimals:    r.Decimals,
		FromAddr:    r.FromAddr,
		ToAddr:      r.ToAddr,
		Amount:      r.Amount.Amount(),
	}
}

// AnchorListQuery holds the query of GET /orgs/:orgId/anchors
type AnchorListQuery struct {
	Period string `form:"period" binding:"omitempty,period"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Uptime  string            `json:"uptime"`
	Checks  map[string]string `json:"checks"`
}
