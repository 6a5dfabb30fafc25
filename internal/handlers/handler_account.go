package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/avistalabs/ledger_backend/internal/core/ports/services"
	"github.com/avistalabs/ledger_backend/internal/dto"
)

// accountHandler handles chart-of-accounts routes.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers account routes under an entity group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
	}
}

// createAccount godoc
// @Summary Create an account
// @Description Adds an account to the entity's chart. Idempotent on (entity, code).
// @Tags accounts
// @Accept json
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Code does not match type"
// @Security BearerAuth
// @Router /entities/{entityID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), entityID, req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the entity's accounts ordered by code, each with its running balance
// @Tags accounts
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param activeOnly query bool false "Only active accounts"
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /entities/{entityID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	activeOnly := c.Query("activeOnly") == "true"

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), entityID, activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param entityID path int true "Entity ID"
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /entities/{entityID}/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	entityID, ok := entityIDParam(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), entityID, c.Param("accountID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
