// Package api holds the Gin HTTP handlers. Handlers bind and validate
// request bodies, build the caller's Principal from the JWT claims the
// middleware stashed, call one service method, and map its error to a
// status code. No business rules live here.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arefin-dev/messwallet/internal/middleware"
	"github.com/arefin-dev/messwallet/internal/service"
)

// principal rebuilds the authenticated caller from the context values set
// by AuthMiddleware.
func principal(c *gin.Context) service.Principal {
	return service.Principal{
		UserID: middleware.GetUserID(c),
		Email:  middleware.GetEmail(c),
		Role:   middleware.GetRole(c),
	}
}

// respondError maps service errors onto status codes: 403 for role
// failures, 404 for missing rows, 409 for duplicates, 400 for bad input,
// 500 for everything else.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAdminOnly),
		errors.Is(err, service.ErrCannotDeleteFounder),
		errors.Is(err, service.ErrFounderRoleFixed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailRegistered):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrNoMembers):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
