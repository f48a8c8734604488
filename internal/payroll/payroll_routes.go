package payroll

import (
	"go-presensi/internal/middleware"
	"go-presensi/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	// ExtractUserID runs before Idempotency so replay cache keys carry the
	// validated user segment.
	payrolls.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		if redisClient != nil {
			payrolls.POST(
				"/salaries",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "payroll", "create"),
				handler.SetBaseSalary,
			)
		} else {
			payrolls.POST("/salaries", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.SetBaseSalary)
		}
		payrolls.GET("/salaries/:employeeId", middleware.RBACAuthorize(rbacService, "payroll", "read_all"), handler.GetSalaryHistory)

		payrolls.GET("/summaries/me", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetMySummary)

		payrolls.GET("/payslips", middleware.RBACAuthorize(rbacService, "payroll", "read_all"), handler.GetAllPayslips)
		payrolls.GET("/payslips/me", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetMyPayslip)
		payrolls.GET("/payslips/me/download", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.DownloadMyPayslip)
		payrolls.GET("/payslips/:employeeId/download", middleware.RBACAuthorize(rbacService, "payroll", "read_all"), handler.DownloadPayslip)
		payrolls.POST("/payslips/:employeeId/compute", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.ComputePayslip)
		payrolls.POST("/payslips/:employeeId/finalize", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.FinalizePayslip)
	}
}
