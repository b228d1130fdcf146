package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sristy17/sgay-v1/config"
	"github.com/sristy17/sgay-v1/internal/api/handler"
	"github.com/sristy17/sgay-v1/internal/api/middleware"
	"github.com/sristy17/sgay-v1/internal/model"
	"github.com/sristy17/sgay-v1/pkg/jwt"
	"github.com/sristy17/sgay-v1/pkg/redis"
)

// submissions per client IP per minute
const submitRateLimit = 30

// Setup builds the gin engine
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.BodyLimitMB > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.BodyLimitMB << 20))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "store": cfg.Store.Driver})
	})

	admin := middleware.RoleAuth(model.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb, cfg.Auth.Enabled, logger))
	{
		v1.POST("/auth/logout", h.Auth.Logout)

		pending := v1.Group("/pending-entries")
		{
			pending.GET("", h.PendingEntry.ListPendingEntries)
			pending.GET("/:id", h.PendingEntry.GetPendingEntry)
			pending.POST("", middleware.RateLimit(rdb, submitRateLimit, time.Minute), h.PendingEntry.SubmitPendingEntry)
			pending.POST("/:id/approve", admin, h.PendingEntry.ApprovePendingEntry)
			pending.POST("/:id/reject", admin, h.PendingEntry.RejectPendingEntry)
		}

		v1.POST("/progress/preview", h.PendingEntry.PreviewProgress)

		beneficiaries := v1.Group("/beneficiaries")
		{
			beneficiaries.GET("", h.Beneficiary.ListBeneficiaries)
			beneficiaries.GET("/export", admin, h.Beneficiary.ExportBeneficiaries)
			beneficiaries.GET("/:id", h.Beneficiary.GetBeneficiary)
		}

		officers := v1.Group("/officers")
		{
			officers.GET("", h.Officer.ListOfficers)
			officers.POST("", admin, h.Officer.AddOfficer)
			officers.DELETE("/:id", admin, h.Officer.RemoveOfficer)
			officers.GET("/:id/calendar.ics", h.Officer.OfficerCalendar)
		}
	}

	return r
}
