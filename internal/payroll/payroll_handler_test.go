package payroll_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-presensi/internal/attendance"
	"go-presensi/internal/events"
	"go-presensi/internal/payroll"
	payrollerrors "go-presensi/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type stubPayrollService struct {
	setBaseSalaryFn func(ctx context.Context, companyID string, req payroll.SetBaseSalaryRequest) (payroll.SalaryResponse, error)
}

func (s *stubPayrollService) SeedDefaultSalary(context.Context, string, string) error { return nil }

func (s *stubPayrollService) SetBaseSalary(ctx context.Context, companyID string, req payroll.SetBaseSalaryRequest) (payroll.SalaryResponse, error) {
	return s.setBaseSalaryFn(ctx, companyID, req)
}

func (s *stubPayrollService) GetSalaryHistory(context.Context, string, string) ([]payroll.SalaryResponse, error) {
	return nil, nil
}

func (s *stubPayrollService) ApplyDayClosed(context.Context, events.AttendanceDayClosedEvent) error {
	return nil
}

func (s *stubPayrollService) GetMonthlySummary(context.Context, string, string, int, int) (payroll.MonthlySummaryResponse, error) {
	return payroll.MonthlySummaryResponse{}, nil
}

func (s *stubPayrollService) ComputePayslip(context.Context, string, string, int, int) (payroll.PayslipResponse, error) {
	return payroll.PayslipResponse{}, nil
}

func (s *stubPayrollService) FinalizePayslip(context.Context, string, string, string, int, int) (payroll.PayslipResponse, error) {
	return payroll.PayslipResponse{}, nil
}

func (s *stubPayrollService) GetPayslip(context.Context, string, string, int, int) (payroll.PayslipResponse, error) {
	return payroll.PayslipResponse{}, nil
}

func (s *stubPayrollService) GetAllPayslips(context.Context, string, int, int) ([]payroll.PayslipResponse, error) {
	return nil, nil
}

func (s *stubPayrollService) DownloadPayslipPDF(context.Context, string, string, int, int) ([]byte, error) {
	return nil, nil
}

const (
	salaryCacheKey = "idemp:/payrolls/salaries:user-1:key-123"
	salaryLockKey  = salaryCacheKey + ":lock"
)

// The route mimics what the idempotency middleware leaves behind after it
// takes the lock: the cache and lock keys sitting in the request context.
func newSalaryRouter(svc payroll.Service, rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := payroll.NewHandler(svc, attendance.NewFixedClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)), rdb)

	r := gin.New()
	r.POST("/payrolls/salaries", func(c *gin.Context) {
		c.Set("company_id", "company-1")
		c.Set("idempotency_cache_key", salaryCacheKey)
		c.Set("idempotency_lock_key", salaryLockKey)
	}, handler.SetBaseSalary)
	return r
}

func postSalary(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payrolls/salaries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_SetBaseSalaryCachesResponseAndReleasesLock(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	svc := &stubPayrollService{
		setBaseSalaryFn: func(ctx context.Context, companyID string, req payroll.SetBaseSalaryRequest) (payroll.SalaryResponse, error) {
			assert.Equal(t, "company-1", companyID)
			return payroll.SalaryResponse{
				ID:            "sal-1",
				EmployeeID:    req.EmployeeID,
				BaseSalary:    "7500000",
				OvertimeRate:  "1.5",
				EffectiveDate: "2026-03-01",
			}, nil
		},
	}

	mock.Regexp().ExpectSet(salaryCacheKey, `.*"sal-1".*`, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(salaryLockKey).SetVal(1)

	router := newSalaryRouter(svc, rdb)
	w := postSalary(t, router, `{
		"employee_id": "3e7f0b3c-5a3e-4e61-9d2e-3a4f5b6c7d8e",
		"base_salary": 7500000,
		"overtime_rate": 1.5,
		"effective_date": "2026-03-01"
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"sal-1"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_SetBaseSalaryReleasesLockOnFailure(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	svc := &stubPayrollService{
		setBaseSalaryFn: func(context.Context, string, payroll.SetBaseSalaryRequest) (payroll.SalaryResponse, error) {
			return payroll.SalaryResponse{}, payrollerrors.ErrSalaryNotFound
		},
	}

	// No Set expectation: a failed request must not be replayable.
	mock.ExpectDel(salaryLockKey).SetVal(1)

	router := newSalaryRouter(svc, rdb)
	w := postSalary(t, router, `{
		"employee_id": "3e7f0b3c-5a3e-4e61-9d2e-3a4f5b6c7d8e",
		"base_salary": 7500000,
		"overtime_rate": 1.5,
		"effective_date": "2026-03-01"
	}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_SetBaseSalaryWorksWithoutRedis(t *testing.T) {
	svc := &stubPayrollService{
		setBaseSalaryFn: func(context.Context, string, payroll.SetBaseSalaryRequest) (payroll.SalaryResponse, error) {
			return payroll.SalaryResponse{ID: "sal-2"}, nil
		},
	}

	router := newSalaryRouter(svc, nil)
	w := postSalary(t, router, `{
		"employee_id": "3e7f0b3c-5a3e-4e61-9d2e-3a4f5b6c7d8e",
		"base_salary": 7500000,
		"effective_date": "2026-03-01"
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"sal-2"`)
}
