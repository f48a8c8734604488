package payroll

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-presensi/internal/attendance"
	"go-presensi/internal/shared/apperror"
	"go-presensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Replayed responses stay valid long enough to cover client retry windows.
const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	clock   attendance.Clock
	rdb     *redis.Client
}

func NewHandler(service Service, clock attendance.Clock, rdb ...*redis.Client) *Handler {
	h := &Handler{service: service, clock: clock}
	if len(rdb) > 0 {
		h.rdb = rdb[0]
	}
	return h
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) period(c *gin.Context) (int, int) {
	now := h.clock.Now()
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	return year, month
}

func (h *Handler) SetBaseSalary(c *gin.Context) {
	companyID := c.GetString("company_id")

	// The idempotency middleware only takes the lock; the handler releases
	// it and caches the response the replay path serves.
	lockKey := c.GetString("idempotency_lock_key")
	cacheKey := c.GetString("idempotency_cache_key")
	if h.rdb != nil && lockKey != "" {
		defer h.rdb.Del(c.Request.Context(), lockKey)
	}

	var req SetBaseSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.SetBaseSalary(c.Request.Context(), companyID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.rdb != nil && cacheKey != "" {
		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			_ = h.rdb.Set(c.Request.Context(), cacheKey, payload, idempotencyCacheTTL).Err()
		}
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetSalaryHistory(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeId")

	resp, err := h.service.GetSalaryHistory(c.Request.Context(), companyID, employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMySummary(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")
	year, month := h.period(c)

	resp, err := h.service.GetMonthlySummary(c.Request.Context(), companyID, employeeID, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ComputePayslip(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeId")
	year, month := h.period(c)

	resp, err := h.service.ComputePayslip(c.Request.Context(), companyID, employeeID, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) FinalizePayslip(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("employee_id")
	employeeID := c.Param("employeeId")
	year, month := h.period(c)

	resp, err := h.service.FinalizePayslip(c.Request.Context(), companyID, actorID, employeeID, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMyPayslip(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")
	year, month := h.period(c)

	resp, err := h.service.GetPayslip(c.Request.Context(), companyID, employeeID, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAllPayslips(c *gin.Context) {
	companyID := c.GetString("company_id")
	year, month := h.period(c)

	resp, err := h.service.GetAllPayslips(c.Request.Context(), companyID, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadMyPayslip(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")
	h.downloadPayslip(c, companyID, employeeID)
}

func (h *Handler) DownloadPayslip(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeId")
	h.downloadPayslip(c, companyID, employeeID)
}

func (h *Handler) downloadPayslip(c *gin.Context, companyID, employeeID string) {
	year, month := h.period(c)

	pdf, err := h.service.DownloadPayslipPDF(c.Request.Context(), companyID, employeeID, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	filename := "payslip-" + strconv.Itoa(year) + "-" + strconv.Itoa(month) + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
