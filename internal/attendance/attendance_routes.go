package attendance

import (
	"go-attendance/internal/authz"
	"go-attendance/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer, rdb *redis.Client) {
	records := r.Group("/attendance")
	records.Use(middleware.AuthMiddleware())
	{
		records.POST("/checkin",
			authz.Require(enforcer, "attendance", "checkin"),
			middleware.Idempotency(rdb),
			h.CheckIn,
		)
		records.POST("/checkout",
			authz.Require(enforcer, "attendance", "checkout"),
			middleware.Idempotency(rdb),
			h.CheckOut,
		)

		records.GET("/today", authz.Require(enforcer, "attendance", "read_self"), h.TodayStatus)
		records.GET("/my-history", authz.Require(enforcer, "attendance", "read_self"), h.MyHistory)
		records.GET("/my-summary", authz.Require(enforcer, "attendance", "read_self"), h.MySummary)

		records.GET("/all", authz.Require(enforcer, "attendance", "read_all"), h.GetAll)
		records.GET("/employee/:id", authz.Require(enforcer, "attendance", "read_all"), h.EmployeeHistory)
		records.GET("/summary", authz.Require(enforcer, "attendance", "read_all"), h.FleetSummary)
		records.GET("/today-status", authz.Require(enforcer, "attendance", "read_all"), h.TodayFleet)
		records.GET("/export", authz.Require(enforcer, "attendance", "export"), h.Export)
	}
}
