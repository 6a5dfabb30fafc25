package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
)

// reconciliationHandler handles bank transaction and reconciliation routes.
type reconciliationHandler struct {
	reconService portssvc.ReconciliationSvcFacade
}

// registerReconciliationRoutes registers bank feed and matcher routes under
// an entity group.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconService portssvc.ReconciliationSvcFacade) {
	h := &reconciliationHandler{reconService: reconService}

	txns := rg.Group("/bank-transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("/unreconciled", h.listUnreconciled)
		txns.POST("/auto-match", h.autoMatch)
		txns.POST("/:txnID/match", h.manualMatch)
		txns.POST("/:txnID/split", h.split)
		txns.POST("/:txnID/create-entry", h.createEntryFromTransaction)
	}
	rg.POST("/reconciliation/finalize", h.finalize)
}

// createTransaction godoc
// @Summary Record a bank transaction
// @Description Inserts a bank feed row (bank-sync collaborator contract)
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param transaction body dto.CreateBankTransactionRequest true "Transaction"
// @Success 201 {object} dto.BankTransactionResponse
// @Security BearerAuth
// @Router /entities/{entityID}/bank-transactions [post]
func (h *reconciliationHandler) createTransaction(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateBankTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	txn, err := h.reconService.CreateBankTransaction(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankTransactionResponse(txn))
}

// listUnreconciled godoc
// @Summary List unreconciled bank transactions
// @Tags reconciliation
// @Produce json
// @Param entityID path int true "Entity ID"
// @Success 200 {array} dto.BankTransactionResponse
// @Security BearerAuth
// @Router /entities/{entityID}/bank-transactions/unreconciled [get]
func (h *reconciliationHandler) listUnreconciled(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	txns, err := h.reconService.ListUnreconciled(c.Request.Context(), entityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponses(txns))
}

// autoMatch godoc
// @Summary Auto-match bank transactions against documents
// @Description First qualifying document per transaction; amount tolerance and day window tunable per run
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param params body dto.AutoMatchRequest false "Heuristic overrides"
// @Success 200 {object} dto.AutoMatchResponse
// @Security BearerAuth
// @Router /entities/{entityID}/bank-transactions/auto-match [post]
func (h *reconciliationHandler) autoMatch(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.AutoMatchRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resp, err := h.reconService.AutoMatch(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// manualMatch godoc
// @Summary Manually match a transaction to a journal entry
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param txnID path string true "Transaction ID"
// @Param match body dto.ManualMatchRequest true "Journal entry link"
// @Success 204 "Matched"
// @Failure 404 {object} map[string]string "Transaction or entry not found"
// @Security BearerAuth
// @Router /entities/{entityID}/bank-transactions/{txnID}/match [post]
func (h *reconciliationHandler) manualMatch(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.ManualMatchRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.reconService.ManualMatch(c.Request.Context(), entityID, c.Param("txnID"), req.JournalEntryID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// split godoc
// @Summary Split a bank transaction
// @Description Parts must sum to the original absolute amount within a cent
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param txnID path string true "Transaction ID"
// @Param split body dto.SplitRequest true "Parts"
// @Success 200 {array} dto.BankTransactionResponse
// @Failure 400 {object} map[string]string "Split mismatch"
// @Security BearerAuth
// @Router /entities/{entityID}/bank-transactions/{txnID}/split [post]
func (h *reconciliationHandler) split(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.SplitRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	parts, err := h.reconService.Split(c.Request.Context(), entityID, c.Param("txnID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponses(parts))
}

// createEntryFromTransaction godoc
// @Summary Post a journal entry from a bank transaction
// @Description Creates a two-line entry on the absolute amount and reconciles the transaction against it
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param txnID path string true "Transaction ID"
// @Param accounts body dto.CreateEntryFromTransactionRequest true "Debit and credit accounts"
// @Success 201 {object} dto.EntryResponse
// @Security BearerAuth
// @Router /entities/{entityID}/bank-transactions/{txnID}/create-entry [post]
func (h *reconciliationHandler) createEntryFromTransaction(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateEntryFromTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.reconService.CreateEntryFromTransaction(c.Request.Context(), entityID, c.Param("txnID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// finalize godoc
// @Summary Finalize a period reconciliation
// @Description Records the immutable tie-out snapshot for the period
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param finalize body dto.FinalizeReconciliationRequest true "Statement balance and period"
// @Success 201 {object} dto.SnapshotResponse
// @Security BearerAuth
// @Router /entities/{entityID}/reconciliation/finalize [post]
func (h *reconciliationHandler) finalize(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.FinalizeReconciliationRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	snapshot, err := h.reconService.Finalize(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSnapshotResponse(snapshot))
}
