// Package handlers exposes the service facades over HTTP with gin.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/avistalabs/ledger_backend/internal/apperrors"
	"github.com/avistalabs/ledger_backend/internal/middleware"
)

// respondServiceError translates service-layer errors to HTTP statuses. The
// domain sentinels carry the interesting cases; anything unrecognized is a 500
// with the detail kept in the log rather than the response.
func respondServiceError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAccountCode),
		errors.Is(err, apperrors.ErrUnbalanced),
		errors.Is(err, apperrors.ErrSplitMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSelfApproval),
		errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotPending),
		errors.Is(err, apperrors.ErrImmutable),
		errors.Is(err, apperrors.ErrPeriodLocked),
		errors.Is(err, apperrors.ErrCloseBlocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindJSON binds the request body, answering 400 itself on failure. Field
// validation failures are reported per field instead of as one opaque string.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Field() + " failed on '" + fe.Tag() + "'"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed: " + strings.Join(fields, "; ")})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
	return false
}

// requireUserID fetches the authenticated user id, answering 401 itself when
// the auth middleware did not run.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}

// entityIDParam parses the :entityID path parameter, answering 400 itself on
// failure.
func entityIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("entityID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entity ID"})
		return 0, false
	}
	return id, true
}

// dateQuery parses a required YYYY-MM-DD query parameter, answering 400
// itself on failure.
func dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing '" + name + "' date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// yearMonthQuery parses the year and month query parameters, answering 400
// itself on failure.
func yearMonthQuery(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1900 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'year'"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'month'"})
		return 0, 0, false
	}
	return year, month, true
}
