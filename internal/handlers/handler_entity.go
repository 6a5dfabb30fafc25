package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
)

// entityHandler handles accounting entity routes and mounts the per-entity
// sub-resources.
type entityHandler struct {
	entityService portssvc.EntitySvcFacade
}

// registerEntityRoutes registers /entities and every nested per-entity group.
func registerEntityRoutes(rg *gin.RouterGroup, svc *portssvc.ServiceContainer) {
	h := &entityHandler{entityService: svc.Entity}

	entities := rg.Group("/entities")
	{
		entities.POST("", h.createEntity)
		entities.GET("", h.listEntities)
		entities.GET("/:entityID", h.getEntity)
	}

	scoped := entities.Group("/:entityID")
	registerAccountRoutes(scoped, svc.Account)
	RegisterJournalRoutes(scoped, svc.Journal)
	registerClosingRoutes(scoped, svc.Closing, svc.PeriodLock)
	registerReconciliationRoutes(scoped, svc.Reconciliation)
	registerDocumentRoutes(scoped, svc.Document)
	registerReportingRoutes(scoped, svc.Reporting)
}

// createEntity godoc
// @Summary Create an accounting entity
// @Tags entities
// @Accept json
// @Produce json
// @Param entity body dto.CreateEntityRequest true "Entity details"
// @Success 201 {object} dto.EntityResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /entities [post]
func (h *entityHandler) createEntity(c *gin.Context) {
	var req dto.CreateEntityRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entity, err := h.entityService.CreateEntity(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntityResponse(entity))
}

// listEntities godoc
// @Summary List accounting entities
// @Tags entities
// @Produce json
// @Success 200 {array} dto.EntityResponse
// @Security BearerAuth
// @Router /entities [get]
func (h *entityHandler) listEntities(c *gin.Context) {
	entities, err := h.entityService.ListEntities(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]dto.EntityResponse, len(entities))
	for i := range entities {
		out[i] = dto.ToEntityResponse(&entities[i])
	}
	c.JSON(http.StatusOK, out)
}

// getEntity godoc
// @Summary Get an entity by ID
// @Tags entities
// @Produce json
// @Param entityID path int true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 404 {object} map[string]string "Entity not found"
// @Security BearerAuth
// @Router /entities/{entityID} [get]
func (h *entityHandler) getEntity(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	entity, err := h.entityService.GetEntityByID(c.Request.Context(), entityID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntityResponse(entity))
}
