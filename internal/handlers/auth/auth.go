// internal/handlers/auth/auth.go
package auth

import (
	"net/http"
	"strings"

	authdomain "garimoto-service/internal/domain/auth"
	"garimoto-service/internal/middleware"
	"garimoto-service/internal/pkg/response"
	"garimoto-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *auth.AuthService
}

func NewAuthHandler(authService *auth.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates an admin and returns a token
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", resp)
}

// Logout tears down the current session
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)
	jti := middleware.MustGetJTI(c)
	expiry := middleware.GetTokenExpiry(c)

	if err := h.authService.Logout(c.Request.Context(), identityID, jti, expiry); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "logged out", nil)
}

// Session reports whether the caller holds a live admin session. Always 200:
// the console polls this to leave its "unknown" state, so an absent session
// is a state, not an error.
// GET /auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	var token string
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}
	if token == "" {
		response.Success(c, http.StatusOK, "session state", gin.H{"active": false})
		return
	}

	claims, sess, err := h.authService.ValidateToken(c.Request.Context(), token)
	if err != nil {
		response.Success(c, http.StatusOK, "session state", gin.H{"active": false})
		return
	}

	response.Success(c, http.StatusOK, "session state", gin.H{
		"active":      true,
		"identity_id": claims.IdentityID,
		"email":       sess.Email,
		"roles":       claims.Roles,
		"expires_at":  sess.ExpiresAt,
	})
}

// Me returns the authenticated admin profile
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	admin, err := h.authService.Me(c.Request.Context(), identityID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", admin)
}

// ChangePassword rotates the admin's password and revokes open sessions
// POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req authdomain.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	identityID := middleware.MustGetIdentityID(c)
	if err := h.authService.ChangePassword(c.Request.Context(), identityID, &req); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "password changed", nil)
}
