package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
)

// closingHandler handles the period close workflow and the period lock view.
type closingHandler struct {
	closingService    portssvc.ClosingSvcFacade
	periodLockService portssvc.PeriodLockSvcFacade
}

// registerClosingRoutes registers close and period-lock routes under an
// entity group. There is deliberately no route to set the lock directly; only
// a close run or a conversion advances it.
func registerClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade, periodLockService portssvc.PeriodLockSvcFacade) {
	h := &closingHandler{closingService: closingService, periodLockService: periodLockService}

	rg.GET("/period-lock", h.getPeriodLock)
	closeGroup := rg.Group("/close")
	{
		closeGroup.GET("/preview", h.closePreview)
		closeGroup.POST("/run", h.closeRun)
	}
}

// getPeriodLock godoc
// @Summary Get the entity's locked-through date
// @Tags closing
// @Produce json
// @Param entityID path int true "Entity ID"
// @Success 200 {object} map[string]any
// @Security BearerAuth
// @Router /entities/{entityID}/period-lock [get]
func (h *closingHandler) getPeriodLock(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	lockedThrough, err := h.periodLockService.GetLockedThrough(c.Request.Context(), entityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entityID": entityID, "lockedThrough": lockedThrough})
}

// closePreview godoc
// @Summary Preview the period close gates
// @Description Reports the gate booleans without side effects
// @Tags closing
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} dto.ClosePreviewResponse
// @Security BearerAuth
// @Router /entities/{entityID}/close/preview [get]
func (h *closingHandler) closePreview(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}

	preview, err := h.closingService.ClosePreview(c.Request.Context(), entityID, year, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// closeRun godoc
// @Summary Run the period close
// @Description Posts the closing entry and advances the period lock
// @Tags closing
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} dto.CloseRunResponse
// @Failure 409 {object} map[string]string "Close blocked by open items"
// @Security BearerAuth
// @Router /entities/{entityID}/close/run [post]
func (h *closingHandler) closeRun(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	year, month, ok := yearMonthQuery(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.closingService.CloseRun(c.Request.Context(), entityID, year, month, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
