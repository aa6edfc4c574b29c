package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
)

// handleError maps the domain taxonomy onto HTTP statuses. Every kind stays
// distinguishable in the response detail.
func handleError(c *gin.Context, err error) {
	switch {
	case domainErrors.IsInvalidISBN(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	case domainErrors.IsInvalidArgument(err),
		domainErrors.IsEmailTaken(err),
		domainErrors.IsUsernameTaken(err),
		domainErrors.IsSearchQueryEmpty(err):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case domainErrors.IsInvalidCredentials(err),
		domainErrors.IsRefreshTokenNotValid(err),
		domainErrors.IsAccessTokenRequired(err),
		domainErrors.IsAccessTokenExpired(err),
		domainErrors.IsInvalidToken(err),
		domainErrors.IsAuthRequired(err):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
	case domainErrors.IsAuthorizationFailed(err):
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
	case domainErrors.IsBookNotFound(err),
		domainErrors.IsCategoryNotFound(err),
		domainErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case domainErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
