package handler

import (
	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles organization and insight endpoints
type OrganizationHandler struct {
	BaseHandler
	orgs       OrganizationService
	statements StatementService
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(orgs OrganizationService, statements StatementService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs, statements: statements}
}

// ListOrganizations godoc
// @Summary      List organizations
// @Description  Return the selectable organizations
// @Tags         organizations
// @Produce      json
// @Success      200 {object} dto.Response{data=[]ledgerapp.OrganizationResponse}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orgs [get]
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.orgs.ListOrganizations(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orgs)
}

// GetInsights godoc
// @Summary      Get financial statements
// @Description  Return the cashflow, profit and loss and balance sheet of an organization
// @Tags         organizations
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Success      200 {object} dto.Response{data=ledgerapp.StatementsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orgs/{orgId}/insights [get]
func (h *OrganizationHandler) GetInsights(c *gin.Context) {
	statements, err := h.statements.GetStatements(c.Request.Context(), c.Param("orgId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statements)
}
