package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgeranchor/backend/internal/interfaces/http/dto"
)

// TransactionHandler handles external transaction endpoints
type TransactionHandler struct {
	BaseHandler
	transactions TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactions TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// SimulateTransaction godoc
// @Summary      Simulate a transaction
// @Description  Insert a confirmed simulated transfer
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body dto.SimulateTransactionRequest true "Transfer to simulate"
// @Success      201 {object} dto.Response{data=ledgerapp.TransactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /transactions/simulate [post]
func (h *TransactionHandler) SimulateTransaction(c *gin.Context) {
	var req dto.SimulateTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tx, err := h.transactions.SimulateTransaction(c.Request.Context(), req.ToCommand())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// ListTransactions godoc
// @Summary      List transactions
// @Description  Return recent transactions, optionally filtered by organization
// @Tags         transactions
// @Produce      json
// @Param        org_id query string false "Organization ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]ledgerapp.TransactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	txs, err := h.transactions.ListTransactions(c.Request.Context(), c.Query("org_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txs)
}
