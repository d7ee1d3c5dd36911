package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgeranchor/backend/internal/interfaces/http/dto"
)

// EntryHandler handles ledger entry endpoints
type EntryHandler struct {
	BaseHandler
	entries EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entries EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

// CreateEntry godoc
// @Summary      Record a ledger entry
// @Description  Record a balanced entry. Amounts may be numbers or numeric strings; unparseable amounts count as zero.
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateEntryRequest true "Entry with its lines"
// @Success      201 {object} dto.Response{data=ledgerapp.RecordEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /entries [post]
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.entries.RecordEntry(c.Request.Context(), req.ToCommand())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListEntries godoc
// @Summary      List recent entries
// @Description  Return the most recent entries, optionally filtered by organization
// @Tags         entries
// @Produce      json
// @Param        org_id query string false "Organization ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]ledgerapp.EntrySummaryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /entries [get]
func (h *EntryHandler) ListEntries(c *gin.Context) {
	entries, err := h.entries.ListRecentEntries(c.Request.Context(), c.Query("org_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
