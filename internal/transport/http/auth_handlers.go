package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authservice "github.com/shelfmark/shelfmark/internal/auth/service"

	"github.com/shelfmark/shelfmark/internal/auth/dto"
	"github.com/shelfmark/shelfmark/internal/auth/model"
	"github.com/shelfmark/shelfmark/internal/config"
	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
)

const refreshTokenCookie = "refreshToken"

const userContextKey = "authenticatedUser"

type authHandler struct {
	svc authservice.AuthService
	cfg *config.Config
}

func (h *authHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshTokenCookie, value, maxAge, "/", "", h.cfg.SecureCookies, true)
}

func (h *authHandler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *authHandler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	refreshValue, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}

	h.setRefreshCookie(c, refreshValue, int(h.cfg.RefreshTokenTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"detail": "Login successful"})
}

// token mints a fresh access token off the refresh credential.
func (h *authHandler) token(c *gin.Context) {
	refreshValue, _ := c.Cookie(refreshTokenCookie)

	accessToken, _, err := h.svc.Exchange(c.Request.Context(), refreshValue)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccessTokenResponse{
		AccessToken: accessToken,
		Detail:      dto.UsageHint,
	})
}

func (h *authHandler) logout(c *gin.Context) {
	refreshValue, err := c.Cookie(refreshTokenCookie)
	if err == nil {
		if err := h.svc.Logout(c.Request.Context(), refreshValue); err != nil {
			handleError(c, err)
			return
		}
	}

	// Always clear the client credential, found or not.
	h.setRefreshCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (h *authHandler) me(c *gin.Context) {
	user, err := h.svc.UserFromRefreshToken(c.Request.Context(), cookieValue(c, refreshTokenCookie))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}

// requireAccess resolves the bearer token into a user and stores it in the
// request context for downstream handlers.
func (h *authHandler) requireAccess(c *gin.Context) {
	user, err := h.svc.UserFromAccessToken(c.Request.Context(), bearerToken(c))
	if err != nil {
		handleError(c, err)
		c.Abort()
		return
	}
	c.Set(userContextKey, user)
	c.Next()
}

func (h *authHandler) requireAdmin(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		handleError(c, domainErrors.ErrAuthRequired)
		c.Abort()
		return
	}
	if err := h.svc.Authorize(user, model.RoleAdmin); err != nil {
		handleError(c, err)
		c.Abort()
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

func cookieValue(c *gin.Context, name string) string {
	v, _ := c.Cookie(name)
	return v
}
