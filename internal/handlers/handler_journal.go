package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
)

// journalHandler handles journal entry routes.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// RegisterJournalRoutes registers journal routes under an entity group.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.POST("/batch-post", h.batchPost)
		entries.GET("/:entryID", h.getEntry)
		entries.PATCH("/:entryID", h.updateEntry)
		entries.POST("/:entryID/approve", h.approveEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/adjust", h.createAdjustingEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a balanced pending entry; debits must equal credits
// @Tags journal
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param entry body dto.CreateEntryRequest true "Entry with lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Unbalanced or invalid lines"
// @Failure 409 {object} map[string]string "Period locked"
// @Security BearerAuth
// @Router /entities/{entityID}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Tags journal
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListEntriesResponse
// @Security BearerAuth
// @Router /entities/{entityID}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), entityID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entities/{entityID}/journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	entry, err := h.journalService.GetEntry(c.Request.Context(), entityID, c.Param("entryID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update an unposted entry's header
// @Tags journal
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateEntryRequest true "Header fields"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Entry is posted"
// @Security BearerAuth
// @Router /entities/{entityID}/journal-entries/{entryID} [patch]
func (h *journalHandler) updateEntry(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), entityID, c.Param("entryID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// approveEntry godoc
// @Summary Approve or reject a pending entry
// @Description The decision must come from a different identity than the entry's creator
// @Tags journal
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param entryID path string true "Entry ID"
// @Param decision body dto.ApproveEntryRequest true "Decision"
// @Success 200 {object} dto.EntryResponse
// @Failure 403 {object} map[string]string "Self approval"
// @Failure 409 {object} map[string]string "Entry not pending"
// @Security BearerAuth
// @Router /entities/{entityID}/journal-entries/{entryID}/approve [post]
func (h *journalHandler) approveEntry(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.ApproveEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.Approve(c.Request.Context(), entityID, c.Param("entryID"), userID, req.Approve)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post an approved entry
// @Description Makes the entry permanent; posting twice is a no-op
// @Tags journal
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Entry not approved"
// @Security BearerAuth
// @Router /entities/{entityID}/journal-entries/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.Post(c.Request.Context(), entityID, c.Param("entryID"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// createAdjustingEntry godoc
// @Summary Create an adjusting entry for a posted original
// @Description Spawns a pending entry with every line's debit and credit swapped
// @Tags journal
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param entryID path string true "Posted entry ID"
// @Param body body dto.CreateAdjustingEntryRequest true "Notes"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Original not posted"
// @Security BearerAuth
// @Router /entities/{entityID}/journal-entries/{entryID}/adjust [post]
func (h *journalHandler) createAdjustingEntry(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateAdjustingEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateAdjustingEntry(c.Request.Context(), entityID, c.Param("entryID"), req.Notes, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// batchPost godoc
// @Summary Batch post approved entries
// @Description Posts by explicit ids or by date range; already-posted entries are skipped
// @Tags journal
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param body body dto.BatchPostRequest true "Selection"
// @Success 200 {object} dto.BatchPostResponse
// @Security BearerAuth
// @Router /entities/{entityID}/journal-entries/batch-post [post]
func (h *journalHandler) batchPost(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.BatchPostRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	resp, err := h.journalService.BatchPost(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
