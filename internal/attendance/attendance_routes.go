package attendance

import (
	"go-presensi/internal/middleware"
	"go-presensi/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/check-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.CheckIn)
		attendances.POST("/check-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.CheckOut)
		attendances.GET("/today", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetTodayStatus)
		attendances.GET("/me", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetMyAttendance)
		attendances.GET("/department", middleware.RBACAuthorize(rbacService, "attendance", "read_department"), h.GetDepartmentAttendance)
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read_all"), h.GetAllAttendance)
	}
}
