package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sristy17/sgay-v1/internal/api/middleware"
	"github.com/sristy17/sgay-v1/pkg/response"
)

// parseID reads the numeric :id path parameter. On failure it writes a 400
// and the caller should return.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// MustGetTokenClaims returns the jti and expiry JWTAuth stored for the request.
// Requests without a verified token get a 401.
func MustGetTokenClaims(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(middleware.ContextKeyTokenJTI)
	if jti == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", time.Time{}, false
	}
	exp, _ := c.Get(middleware.ContextKeyTokenExp)
	expiresAt, ok := exp.(time.Time)
	if !ok {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", time.Time{}, false
	}
	return jti, expiresAt, true
}
