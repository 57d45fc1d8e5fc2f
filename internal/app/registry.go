package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"go-attendance/internal/adjustment"
	"go-attendance/internal/attendance"
	"go-attendance/internal/employee"
	"go-attendance/internal/leave"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/middleware"
	"go-attendance/internal/punch"
	"go-attendance/internal/report"
	"go-attendance/internal/rule"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	adjustmentRepo := adjustment.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	punchRepo := punch.NewRepository(gormDB)
	ruleRepo := rule.NewRepository(gormDB)

	// --- Services ---
	adjustmentService := adjustment.NewService(db, adjustmentRepo)
	attendanceService := attendance.NewService(
		db, attendanceRepo,
		employeeRepo, punchRepo, ruleRepo, adjustmentRepo, leaveRepo,
		outboxRepo, rdb,
	)
	employeeService := employee.NewService(db, employeeRepo)
	leaveService := leave.NewService(db, leaveRepo)
	punchService := punch.NewService(db, punchRepo)
	reportService := report.NewService(attendanceRepo, employeeRepo, rdb)
	ruleService := rule.NewService(db, ruleRepo)

	// --- Handlers ---
	adjustmentHandler := adjustment.NewHandler(adjustmentService)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	punchHandler := punch.NewHandler(punchService)
	reportHandler := report.NewHandler(reportService)
	ruleHandler := rule.NewHandler(ruleService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	api := router.Group("/api/v1")
	{
		adjustment.RegisterRoutes(api, adjustmentHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rdb)
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler)
		punch.RegisterRoutes(api, punchHandler)
		report.RegisterRoutes(api, reportHandler)
		rule.RegisterRoutes(api, ruleHandler)
	}

	return nil
}
