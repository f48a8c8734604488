package app

import (
	"database/sql"

	"go-presensi/internal/attendance"
	"go-presensi/internal/auth"
	"go-presensi/internal/company"
	"go-presensi/internal/department"
	"go-presensi/internal/employee"
	"go-presensi/internal/leave"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/overtime"
	"go-presensi/internal/payroll"
	"go-presensi/internal/rbac"
	"go-presensi/internal/rbac/infra"
	"go-presensi/internal/rbac/rbac_http"
	"go-presensi/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	overtimeRepo := overtime.NewRepository(gormDB)
	salaryRepo := payroll.NewSalaryRepository(gormDB)
	summaryRepo := payroll.NewSummaryRepository(gormDB)
	payslipRepo := payroll.NewPayslipRepository(gormDB)

	// --- RBAC core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Shift policy and organization clock ---
	orgLocation := attendance.OrgLocation()
	clock := attendance.NewSystemClock(orgLocation)
	policy := attendance.DefaultPolicy()

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService, employeeRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	attendanceService := attendance.NewServiceWithOutbox(
		db, attendanceRepo, employeeService, outboxRepo, policy, clock, orgLocation,
	)
	companyService := company.NewService(companyRepo)
	departmentService := department.NewService(db, departmentRepo)
	leaveService := leave.NewService(db, leaveRepo, attendanceRepo)
	overtimeService := overtime.NewService(db, overtimeRepo)
	payrollService := payroll.NewService(db, salaryRepo, summaryRepo, payslipRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandler(attendanceService, clock)
	companyHandler := company.NewHandler(companyService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	overtimeHandler := overtime.NewHandler(overtimeService)
	payrollHandler := payroll.NewHandler(payrollService, clock, rdb)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		company.RegisterRoutes(api, companyHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		overtime.RegisterRoutes(api, overtimeHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		rbac_http.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
