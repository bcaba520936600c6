package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coordinator-portal-backend/internal/auth"
	apperrors "coordinator-portal-backend/internal/errors"
)

// respondError maps service errors onto the HTTP error taxonomy: validation
// failures are the caller's fault, upstream failures are a bad gateway,
// anything unclassified is a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsValidation(err),
		errors.Is(err, apperrors.ErrInvalidCategory),
		errors.Is(err, apperrors.ErrInvalidPaginationParams),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrUnknownMaturity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperrors.IsUpstream(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream data unavailable"})
	case apperrors.IsConfiguration(err):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requireEmail pulls the authenticated coordinator from the context, ending
// the request when the middleware did not run.
func requireEmail(c *gin.Context) (string, bool) {
	email, ok := auth.EmailFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrEmailNotInContext.Error()})
		return "", false
	}
	return email, true
}
