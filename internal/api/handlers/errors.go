package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/api/middleware"
	"github.com/vaishnavisales/storefront/internal/auth"
	"github.com/vaishnavisales/storefront/internal/service"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

// respondError maps service errors to HTTP responses. Unexpected errors are
// logged with msg and answered with 500.
func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	var (
		notFound     *errors.ErrNotFound
		unauthorized *errors.ErrUnauthorized
		forbidden    *errors.ErrForbidden
		conflict     *errors.ErrConflict
		validation   *errors.ErrValidation
		transition   *errors.ErrInvalidStateTransition
		unsaved      *errors.ErrUnsaved
	)

	switch {
	case stderrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case stderrors.As(err, &unauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case stderrors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case stderrors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case stderrors.As(err, &validation):
		body := gin.H{"error": err.Error()}
		if len(validation.Fields) > 0 {
			body["fields"] = validation.Fields
		}
		c.JSON(http.StatusBadRequest, body)
	case stderrors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case stderrors.As(err, &unsaved):
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "changes could not be saved, please try again"})
	default:
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// claimsOrAbort returns the caller's claims or answers 401
func claimsOrAbort(c *gin.Context) (*auth.Claims, bool) {
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return claims, true
}

// viewerFor resolves who an order query is answered for. The administrator
// sees every order only while admin mode is on.
func viewerFor(c *gin.Context, svc *service.Services, claims *auth.Claims) (service.Viewer, error) {
	isAdmin, err := svc.Auth.IsAdminMode(c.Request.Context(), claims)
	if err != nil {
		return service.Viewer{}, err
	}
	return service.Viewer{UserID: claims.UserID(), IsAdmin: isAdmin}, nil
}
