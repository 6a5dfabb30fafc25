package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
)

// documentHandler handles document-derived record routes.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

// registerDocumentRoutes registers document routes under an entity group.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := &documentHandler{documentService: documentService}

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.POST("/:documentID/create-entry", h.createEntryFromDocument)
	}
}

// createDocument godoc
// @Summary Record a document
// @Description Stores an extracted receipt, bill or invoice (document-ingestion collaborator contract)
// @Tags documents
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Security BearerAuth
// @Router /entities/{entityID}/documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// createEntryFromDocument godoc
// @Summary Post a journal entry from a document
// @Description Drafts a two-line entry on the document total and links it back
// @Tags documents
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param documentID path string true "Document ID"
// @Param accounts body dto.CreateEntryFromDocumentRequest true "Debit and credit accounts"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Document already posted"
// @Security BearerAuth
// @Router /entities/{entityID}/documents/{documentID}/create-entry [post]
func (h *documentHandler) createEntryFromDocument(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateEntryFromDocumentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.documentService.CreateEntryFromDocument(c.Request.Context(), entityID, c.Param("documentID"), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
