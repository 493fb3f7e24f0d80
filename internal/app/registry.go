package app

import (
	"go-attendance/internal/attendance"
	"go-attendance/internal/auth"
	"go-attendance/internal/authz"
	"go-attendance/internal/dashboard"
	kafkamsg "go-attendance/internal/messaging/kafka"
	"go-attendance/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafkamsg.NewOutboxRepository(gormDB)

	// --- Capability table ---
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo)
	attendanceService := attendance.NewServiceWithOutbox(gormDB, attendanceRepo, userRepo, rdb, outboxRepo)
	dashboardService := dashboard.NewService(attendanceRepo, userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, enforcer, rdb)
		dashboard.RegisterRoutes(api, dashboardHandler, enforcer)
	}

	return nil
}
