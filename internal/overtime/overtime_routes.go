package overtime

import (
	"go-presensi/internal/middleware"
	"go-presensi/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	overtimes := r.Group("/overtimes")
	overtimes.Use(middleware.AuthMiddleware())
	{
		overtimes.POST("", middleware.RBACAuthorize(rbacService, "overtime", "create"), h.Create)
		overtimes.GET("", middleware.RBACAuthorize(rbacService, "overtime", "read_all"), h.GetAll)
		overtimes.GET("/me", middleware.RBACAuthorize(rbacService, "overtime", "read"), h.GetMy)
		overtimes.GET("/:id", middleware.RBACAuthorize(rbacService, "overtime", "read"), h.GetByID)
		overtimes.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "overtime", "approve"), h.Approve)
		overtimes.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "overtime", "approve"), h.Reject)
	}
}
