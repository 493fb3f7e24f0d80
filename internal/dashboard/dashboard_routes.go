package dashboard

import (
	"go-attendance/internal/authz"
	"go-attendance/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	dashboards := r.Group("/dashboard")
	dashboards.Use(middleware.AuthMiddleware())
	{
		dashboards.GET("/employee", authz.Require(enforcer, "dashboard", "read_self"), h.Employee)
		dashboards.GET("/manager", authz.Require(enforcer, "dashboard", "read_fleet"), h.Manager)
	}
}
