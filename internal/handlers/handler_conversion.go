package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
)

// conversionHandler handles entity conversion routes.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

// registerConversionRoutes registers the conversion routes. These sit at the
// top level since a conversion spans two entities.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := &conversionHandler{conversionService: conversionService}

	conversions := rg.Group("/conversions")
	{
		conversions.POST("/preview", h.preview)
		conversions.POST("", h.execute)
		conversions.GET("", h.list)
	}
}

// list godoc
// @Summary List conversion records
// @Tags conversions
// @Produce json
// @Success 200 {array} dto.ConversionRecordResponse
// @Security BearerAuth
// @Router /conversions [get]
func (h *conversionHandler) list(c *gin.Context) {
	records, err := h.conversionService.ListConversions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.ConversionRecordResponse, len(records))
	for i := range records {
		out[i] = dto.ToConversionRecordResponse(&records[i])
	}
	c.JSON(http.StatusOK, out)
}

// preview godoc
// @Summary Preview an entity conversion
// @Description Computes the equity split without mutating anything
// @Tags conversions
// @Accept json
// @Produce json
// @Param conversion body dto.ConversionRequest true "Conversion inputs"
// @Success 200 {object} dto.ConversionPreviewResponse
// @Failure 400 {object} map[string]string "Invalid parties or negative APIC"
// @Security BearerAuth
// @Router /conversions/preview [post]
func (h *conversionHandler) preview(c *gin.Context) {
	var req dto.ConversionRequest
	if !bindJSON(c, &req) {
		return
	}

	preview, err := h.conversionService.ConversionPreview(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// execute godoc
// @Summary Execute an entity conversion
// @Description Locks the source, posts opening balances on the target and records the audit row
// @Tags conversions
// @Accept json
// @Produce json
// @Param conversion body dto.ConversionRequest true "Conversion inputs"
// @Success 201 {object} dto.ConversionRecordResponse
// @Failure 409 {object} map[string]string "Entity already converted"
// @Security BearerAuth
// @Router /conversions [post]
func (h *conversionHandler) execute(c *gin.Context) {
	var req dto.ConversionRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	record, err := h.conversionService.ConversionExecute(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToConversionRecordResponse(record))
}
