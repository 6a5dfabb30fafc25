package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
)

// reportingHandler handles financial statement routes.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers statement routes under an entity group.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/cash-flow", h.cashFlow)
	}
}

// trialBalance godoc
// @Summary Trial balance as of a date
// @Description Posted lines only, each account netted to a single side
// @Tags reports
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param asOf query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalance
// @Security BearerAuth
// @Router /entities/{entityID}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	asOf, ok := dateQuery(c, "asOf")
	if !ok {
		return
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), entityID, asOf)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tb)
}

// incomeStatement godoc
// @Summary Income statement over a window
// @Tags reports
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.IncomeStatement
// @Security BearerAuth
// @Router /entities/{entityID}/reports/income-statement [get]
func (h *reportingHandler) incomeStatement(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	start, ok := dateQuery(c, "start")
	if !ok {
		return
	}
	end, ok := dateQuery(c, "end")
	if !ok {
		return
	}

	is, err := h.reportingService.IncomeStatement(c.Request.Context(), entityID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, is)
}

// balanceSheet godoc
// @Summary Balance sheet as of a date
// @Tags reports
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param asOf query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.BalanceSheet
// @Security BearerAuth
// @Router /entities/{entityID}/reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	asOf, ok := dateQuery(c, "asOf")
	if !ok {
		return
	}

	bs, err := h.reportingService.BalanceSheet(c.Request.Context(), entityID, asOf)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}

// cashFlow godoc
// @Summary Cash flow over a window
// @Description Net debit-credit change over the cash account range
// @Tags reports
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.CashFlow
// @Security BearerAuth
// @Router /entities/{entityID}/reports/cash-flow [get]
func (h *reportingHandler) cashFlow(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	start, ok := dateQuery(c, "start")
	if !ok {
		return
	}
	end, ok := dateQuery(c, "end")
	if !ok {
		return
	}

	cf, err := h.reportingService.CashFlow(c.Request.Context(), entityID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cf)
}
