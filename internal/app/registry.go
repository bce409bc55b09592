package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-timeoff/internal/allowance"
	"go-timeoff/internal/audit"
	"go-timeoff/internal/auth"
	"go-timeoff/internal/authz"
	"go-timeoff/internal/authz/infra"
	"go-timeoff/internal/comment"
	"go-timeoff/internal/company"
	"go-timeoff/internal/department"
	"go-timeoff/internal/employee"
	"go-timeoff/internal/feed"
	"go-timeoff/internal/leave"
	"go-timeoff/internal/leavetype"
	"go-timeoff/internal/messaging/kafka"
	"go-timeoff/internal/report"
	"go-timeoff/internal/schedule"
	"go-timeoff/internal/teamview"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	allowanceRepo := allowance.NewRepository(gormDB)
	commentRepo := comment.NewRepository(gormDB)
	feedRepo := feed.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Authorization ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	predicate := authz.NewPredicate(departmentRepo, employeeRepo)

	// --- Domain core ---
	resolver := schedule.NewResolver(scheduleRepo)
	engine := allowance.NewEngine(allowanceRepo, leaveTypeRepo, leaveRepo, companyRepo)
	recorder := kafka.NewRecorder(outboxRepo)

	// --- Services ---
	authService := auth.NewService(db, employeeRepo, companyRepo, departmentRepo, leaveTypeRepo, scheduleRepo)
	employeeService := employee.NewService(db, employeeRepo, departmentRepo)
	departmentService := department.NewService(departmentRepo, employeeRepo)
	scheduleService := schedule.NewService(scheduleRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, companyRepo, leaveTypeRepo, resolver, predicate, engine, recorder)
	allowanceService := allowance.NewService(engine, allowanceRepo, employeeRepo, resolver, predicate)
	teamViewService := teamview.NewService(leaveRepo, employeeRepo, resolver, predicate)
	feedService := feed.NewService(feedRepo, leaveRepo, employeeRepo, companyRepo, scheduleRepo, resolver, predicate)
	commentService := comment.NewService(commentRepo, leaveRepo)
	auditService := audit.NewService(auditRepo)
	reportService := report.NewService(engine, leaveRepo, employeeRepo, leaveTypeRepo, commentRepo, resolver, predicate)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	departmentHandler := department.NewHandler(departmentService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveHandler := leave.NewHandler(leaveService)
	allowanceHandler := allowance.NewHandler(allowanceService)
	teamViewHandler := teamview.NewHandler(teamViewService)
	feedHandler := feed.NewHandler(feedService)
	commentHandler := comment.NewHandler(commentService)
	auditHandler := audit.NewHandler(auditService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
		department.RegisterRoutes(api, departmentHandler, enforcer)
		schedule.RegisterRoutes(api, scheduleHandler, enforcer)
		leavetype.RegisterRoutes(api, leaveTypeHandler, enforcer)
		leave.RegisterRoutes(api, leaveHandler, enforcer, rdb)
		allowance.RegisterRoutes(api, allowanceHandler, enforcer)
		teamview.RegisterRoutes(api, teamViewHandler, enforcer)
		feed.RegisterRoutes(api, feedHandler, enforcer)
		comment.RegisterRoutes(api, commentHandler, enforcer)
		audit.RegisterRoutes(api, auditHandler, enforcer)
		report.RegisterRoutes(api, reportHandler, enforcer)
	}

	return nil
}
