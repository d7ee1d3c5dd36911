package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgeranchor/backend/internal/interfaces/http/dto"
)

// AnchorHandler handles period anchoring endpoints
type AnchorHandler struct {
	BaseHandler
	anchors AnchorService
}

// NewAnchorHandler creates a new AnchorHandler
func NewAnchorHandler(anchors AnchorService) *AnchorHandler {
	return &AnchorHandler{anchors: anchors}
}

// AnchorPeriod godoc
// @Summary      Anchor a period
// @Description  Compute and record the commitment of an organization's period
// @Tags         anchors
// @Accept       json
// @Produce      json
// @Param        request body dto.AnchorRequest true "Organization and period"
// @Success      201 {object} dto.Response{data=ledgerapp.AnchorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /anchor [post]
func (h *AnchorHandler) AnchorPeriod(c *gin.Context) {
	var req dto.AnchorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	anchor, err := h.anchors.AnchorPeriod(c.Request.Context(), req.ToCommand())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, anchor)
}

// ListAnchors godoc
// @Summary      List anchors
// @Description  Return the anchors of an organization, optionally for one period
// @Tags         anchors
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        period query string false "Period (YYYY-MM)"
// @Success      200 {object} dto.Response{data=[]ledgerapp.AnchorResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orgs/{orgId}/anchors [get]
func (h *AnchorHandler) ListAnchors(c *gin.Context) {
	var query dto.AnchorListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindError(c, err)
		return
	}

	anchors, err := h.anchors.ListAnchors(c.Request.Context(), c.Param("orgId"), query.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, anchors)
}

// VerifyAnchor godoc
// @Summary      Verify an anchor
// @Description  Recompute the commitment of an anchored period and compare it to the stored root
// @Tags         anchors
// @Produce      json
// @Param        orgId path string true "Organization ID" format(uuid)
// @Param        anchorId path string true "Anchor ID" format(uuid)
// @Success      200 {object} dto.Response{data=ledgerapp.AnchorVerificationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orgs/{orgId}/anchors/{anchorId}/verify [get]
func (h *AnchorHandler) VerifyAnchor(c *gin.Context) {
	result, err := h.anchors.VerifyAnchor(c.Request.Context(), c.Param("orgId"), c.Param("anchorId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
