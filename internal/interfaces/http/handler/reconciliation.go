package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgeranchor/backend/internal/interfaces/http/dto"
)

// ReconciliationHandler handles transaction to entry links
type ReconciliationHandler struct {
	BaseHandler
	reconciler ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(reconciler ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciler: reconciler}
}

// Reconcile godoc
// @Summary      Reconcile a transaction
// @Description  Link an external transaction to a ledger entry
// @Tags         reconciliation
// @Accept       json
// @Produce      json
// @Param        request body dto.ReconcileRequest true "Transaction and entry to link"
// @Success      201 {object} dto.Response{data=ledgerapp.ReconcileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reconcile [post]
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	link, err := h.reconciler.Reconcile(c.Request.Context(), req.ToCommand())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, link)
}

// ListLinks godoc
// @Summary      List entry reconciliations
// @Description  Return the transactions reconciled against an entry
// @Tags         reconciliation
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        entryId path string true "Entry ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]ledgerapp.ReconcileResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orgs/{orgId}/entries/{entryId}/links [get]
func (h *ReconciliationHandler) ListLinks(c *gin.Context) {
	links, err := h.reconciler.ListLinks(c.Request.Context(), c.Param("orgId"), c.Param("entryId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, links)
}
