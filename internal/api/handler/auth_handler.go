package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sristy17/sgay-v1/internal/service"
	"github.com/sristy17/sgay-v1/pkg/response"
)

// AuthHandler token revocation
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Logout POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt, ok := MustGetTokenClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		_ = c.Error(err)
		if errors.Is(err, service.ErrRevocationUnavailable) {
			response.ServiceUnavailable(c, 11001, "token revocation unavailable")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
