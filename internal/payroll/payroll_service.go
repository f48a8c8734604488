package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-presensi/internal/attendance"
	"go-presensi/internal/events"
	payrollerrors "go-presensi/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// standardMonthlyHours is the divisor turning a monthly base salary into an
// hourly rate: 22 working days of 8 hours.
var standardMonthlyHours = decimal.NewFromInt(176)

var minutesPerHour = decimal.NewFromInt(60)

const payslipPDFCacheTTL = 10 * time.Minute

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	SeedDefaultSalary(ctx context.Context, companyID, employeeID string) error
	SetBaseSalary(ctx context.Context, companyID string, req SetBaseSalaryRequest) (SalaryResponse, error)
	GetSalaryHistory(ctx context.Context, companyID, employeeID string) ([]SalaryResponse, error)

	ApplyDayClosed(ctx context.Context, event events.AttendanceDayClosedEvent) error
	GetMonthlySummary(ctx context.Context, companyID, employeeID string, year, month int) (MonthlySummaryResponse, error)

	ComputePayslip(ctx context.Context, companyID, employeeID string, year, month int) (PayslipResponse, error)
	FinalizePayslip(ctx context.Context, companyID, actorID, employeeID string, year, month int) (PayslipResponse, error)
	GetPayslip(ctx context.Context, companyID, employeeID string, year, month int) (PayslipResponse, error)
	GetAllPayslips(ctx context.Context, companyID string, year, month int) ([]PayslipResponse, error)
	DownloadPayslipPDF(ctx context.Context, companyID, employeeID string, year, month int) ([]byte, error)
}

type service struct {
	db        *sql.DB
	salaries  SalaryRepository
	summaries SummaryRepository
	payslips  PayslipRepository
	rdb       *redis.Client
	sf        singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	salaries SalaryRepository,
	summaries SummaryRepository,
	payslips PayslipRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:        db,
		salaries:  salaries,
		summaries: summaries,
		payslips:  payslips,
		rdb:       rdb,
		logger:    l,
	}
}

func validatePeriod(year, month int) error {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return payrollerrors.ErrInvalidPeriod
	}
	return nil
}

// SeedDefaultSalary registers a zero base salary for a new hire so payroll
// can always resolve a rate. Duplicate deliveries of the same event are
// absorbed by the unique constraint.
func (s *service) SeedDefaultSalary(ctx context.Context, companyID, employeeID string) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return payrollerrors.ErrInvalidEmployeeID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return payrollerrors.ErrInvalidEmployeeID
	}

	salary := &EmployeeSalary{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		BaseSalary:    decimal.Zero,
		OvertimeRate:  decimal.NewFromFloat(1.5),
		EffectiveDate: time.Now().UTC().Truncate(24 * time.Hour),
	}

	if err := s.salaries.Create(ctx, salary); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("default salary seeded",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)
	return nil
}

func (s *service) SetBaseSalary(ctx context.Context, companyID string, req SetBaseSalaryRequest) (SalaryResponse, error) {
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return SalaryResponse{}, payrollerrors.ErrInvalidPeriod
	}
	baseSalary := decimal.NewFromFloat(req.BaseSalary)
	if baseSalary.IsNegative() {
		return SalaryResponse{}, payrollerrors.ErrInvalidSalaryAmount
	}
	overtimeRate := decimal.NewFromFloat(1.5)
	if req.OvertimeRate > 0 {
		overtimeRate = decimal.NewFromFloat(req.OvertimeRate)
	}

	salary := &EmployeeSalary{
		ID:            uuid.New(),
		CompanyID:     uuid.MustParse(companyID),
		EmployeeID:    uuid.MustParse(req.EmployeeID),
		BaseSalary:    baseSalary,
		OvertimeRate:  overtimeRate,
		EffectiveDate: effectiveDate,
	}

	if err := s.salaries.Create(ctx, salary); err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("base salary set",
		zap.String("employee_id", req.EmployeeID),
		zap.String("base_salary", baseSalary.StringFixed(2)),
		zap.String("effective_date", req.EffectiveDate),
	)
	return mapSalaryToResponse(*salary), nil
}

func (s *service) GetSalaryHistory(ctx context.Context, companyID, employeeID string) ([]SalaryResponse, error) {
	rows, err := s.salaries.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]SalaryResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapSalaryToResponse(row)
	}
	return resp, nil
}

// ApplyDayClosed folds one closed attendance day into the employee's monthly
// summary. The row is locked for the duration of the fold so concurrent
// consumers cannot lose increments.
func (s *service) ApplyDayClosed(ctx context.Context, event events.AttendanceDayClosedEvent) error {
	day, err := time.Parse("2006-01-02", event.AttendanceDate)
	if err != nil {
		return fmt.Errorf("parse attendance_date %q: %w", event.AttendanceDate, err)
	}
	workHours, err := decimal.NewFromString(event.WorkHours)
	if err != nil {
		return fmt.Errorf("parse work_hours %q: %w", event.WorkHours, err)
	}
	overtimeHours, err := decimal.NewFromString(event.OvertimeHours)
	if err != nil {
		return fmt.Errorf("parse overtime_hours %q: %w", event.OvertimeHours, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.summaries.WithTx(tx)

	summary, err := qtx.FindForUpdate(ctx, event.CompanyID, event.EmployeeID, day.Year(), int(day.Month()))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if summary == nil {
		summary = &MonthlySummary{
			ID:            uuid.New(),
			CompanyID:     uuid.MustParse(event.CompanyID),
			EmployeeID:    uuid.MustParse(event.EmployeeID),
			Year:          day.Year(),
			Month:         int(day.Month()),
			WorkHours:     decimal.Zero,
			OvertimeHours: decimal.Zero,
		}
		foldDayIntoSummary(summary, event.Status, workHours, overtimeHours, event.LateMinutes, event.EarlyLeaveMinutes)
		summary.LastFoldedDate = day
		if err := qtx.Create(ctx, summary); err != nil {
			return err
		}
	} else {
		if !day.After(summary.LastFoldedDate) {
			s.logger.Warn("day already folded, skipping redelivery",
				zap.String("employee_id", event.EmployeeID),
				zap.String("attendance_date", event.AttendanceDate),
			)
			return nil
		}
		foldDayIntoSummary(summary, event.Status, workHours, overtimeHours, event.LateMinutes, event.EarlyLeaveMinutes)
		summary.LastFoldedDate = day
		if err := qtx.Update(ctx, summary); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Debug("day folded into monthly summary",
		zap.String("employee_id", event.EmployeeID),
		zap.String("attendance_date", event.AttendanceDate),
		zap.String("status", event.Status),
	)
	return nil
}

func foldDayIntoSummary(summary *MonthlySummary, status string, workHours, overtimeHours decimal.Decimal, lateMinutes, earlyLeaveMinutes int) {
	switch attendance.Status(status) {
	case attendance.StatusPresent, attendance.StatusWorkFromHome:
		summary.PresentDays++
	case attendance.StatusLate:
		summary.PresentDays++
		summary.LateDays++
	case attendance.StatusEarlyLeave:
		summary.PresentDays++
		summary.EarlyLeaveDays++
	case attendance.StatusHalfDay:
		summary.HalfDays++
	case attendance.StatusOnLeave:
		summary.LeaveDays++
	}
	summary.WorkHours = summary.WorkHours.Add(workHours)
	summary.OvertimeHours = summary.OvertimeHours.Add(overtimeHours)
	summary.LateMinutes += lateMinutes
	summary.EarlyLeaveMinutes += earlyLeaveMinutes
}

func (s *service) GetMonthlySummary(ctx context.Context, companyID, employeeID string, year, month int) (MonthlySummaryResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return MonthlySummaryResponse{}, err
	}
	summary, err := s.summaries.FindByEmployeeAndPeriod(ctx, companyID, employeeID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MonthlySummaryResponse{}, payrollerrors.ErrNoAttendanceForPeriod
		}
		return MonthlySummaryResponse{}, err
	}
	return mapSummaryToResponse(*summary), nil
}

// ComputePayslip derives the month's pay from the latest base salary and the
// attendance summary. A DRAFT payslip is overwritten on recompute; a
// FINALIZED one refuses.
func (s *service) ComputePayslip(ctx context.Context, companyID, employeeID string, year, month int) (PayslipResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return PayslipResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("compute payslip begin tx failed", zap.Error(err))
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	salary, err := s.salaries.WithTx(tx).FindLatestByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrSalaryNotFound
		}
		return PayslipResponse{}, err
	}

	summary, err := s.summaries.WithTx(tx).FindByEmployeeAndPeriod(ctx, companyID, employeeID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrNoAttendanceForPeriod
		}
		return PayslipResponse{}, err
	}

	qtx := s.payslips.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndPeriod(ctx, companyID, employeeID, year, month)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return PayslipResponse{}, err
	}
	if existing != nil && existing.Status == PayslipStatusFinalized {
		return PayslipResponse{}, payrollerrors.ErrPayslipFinalized
	}

	lines := computePayLines(salary.BaseSalary, salary.OvertimeRate, summary)

	var payslip *Payslip
	if existing != nil {
		existing.BaseSalary = lines.base
		existing.OvertimePay = lines.overtimePay
		existing.LateDeduction = lines.lateDeduction
		existing.EarlyLeaveDeduction = lines.earlyLeaveDeduction
		existing.NetSalary = lines.net
		if err := qtx.Update(ctx, existing); err != nil {
			return PayslipResponse{}, err
		}
		payslip = existing
	} else {
		payslip = &Payslip{
			ID:                  uuid.New(),
			CompanyID:           uuid.MustParse(companyID),
			EmployeeID:          uuid.MustParse(employeeID),
			Year:                year,
			Month:               month,
			BaseSalary:          lines.base,
			OvertimePay:         lines.overtimePay,
			LateDeduction:       lines.lateDeduction,
			EarlyLeaveDeduction: lines.earlyLeaveDeduction,
			NetSalary:           lines.net,
			Status:              PayslipStatusDraft,
		}
		if err := qtx.Create(ctx, payslip); err != nil {
			return PayslipResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	s.invalidatePDFCache(ctx, companyID, employeeID, year, month)

	s.logger.Info("payslip computed",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.String("net_salary", payslip.NetSalary.StringFixed(2)),
	)
	return mapPayslipToResponse(*payslip), nil
}

type payLines struct {
	base                decimal.Decimal
	overtimePay         decimal.Decimal
	lateDeduction       decimal.Decimal
	earlyLeaveDeduction decimal.Decimal
	net                 decimal.Decimal
}

func computePayLines(base, overtimeRate decimal.Decimal, summary *MonthlySummary) payLines {
	hourlyRate := base.Div(standardMonthlyHours)

	overtimePay := summary.OvertimeHours.Mul(hourlyRate).Mul(overtimeRate).Round(2)
	lateDeduction := decimal.NewFromInt(int64(summary.LateMinutes)).
		Div(minutesPerHour).Mul(hourlyRate).Round(2)
	earlyLeaveDeduction := decimal.NewFromInt(int64(summary.EarlyLeaveMinutes)).
		Div(minutesPerHour).Mul(hourlyRate).Round(2)

	net := base.Add(overtimePay).Sub(lateDeduction).Sub(earlyLeaveDeduction).Round(2)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return payLines{
		base:                base.Round(2),
		overtimePay:         overtimePay,
		lateDeduction:       lateDeduction,
		earlyLeaveDeduction: earlyLeaveDeduction,
		net:                 net,
	}
}

func (s *service) FinalizePayslip(ctx context.Context, companyID, actorID, employeeID string, year, month int) (PayslipResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return PayslipResponse{}, err
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayslipResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.payslips.WithTx(tx)

	payslip, err := qtx.FindByEmployeeAndPeriod(ctx, companyID, employeeID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}
	if payslip.Status == PayslipStatusFinalized {
		return PayslipResponse{}, payrollerrors.ErrPayslipFinalized
	}

	now := time.Now().UTC()
	payslip.Status = PayslipStatusFinalized
	payslip.FinalizedBy = &actorUUID
	payslip.FinalizedAt = &now

	if err := qtx.Update(ctx, payslip); err != nil {
		return PayslipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	s.invalidatePDFCache(ctx, companyID, employeeID, year, month)

	s.logger.Info("payslip finalized",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.String("finalized_by", actorID),
	)
	return mapPayslipToResponse(*payslip), nil
}

func (s *service) GetPayslip(ctx context.Context, companyID, employeeID string, year, month int) (PayslipResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return PayslipResponse{}, err
	}
	payslip, err := s.payslips.FindByEmployeeAndPeriod(ctx, companyID, employeeID, year, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}
	return mapPayslipToResponse(*payslip), nil
}

func (s *service) GetAllPayslips(ctx context.Context, companyID string, year, month int) ([]PayslipResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}
	rows, err := s.payslips.FindAllByCompanyAndPeriod(ctx, companyID, year, month)
	if err != nil {
		return nil, err
	}
	resp := make([]PayslipResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapPayslipToResponse(row)
	}
	return resp, nil
}

// DownloadPayslipPDF renders the payslip as a small single-page PDF. Renders
// are cached in Redis and deduplicated with singleflight so a burst of
// downloads hits the database once.
func (s *service) DownloadPayslipPDF(ctx context.Context, companyID, employeeID string, year, month int) ([]byte, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	cacheKey := pdfCacheKey(companyID, employeeID, year, month)
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("payslip pdf cache read failed", zap.Error(err))
		}
	}

	result, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		payslip, err := s.payslips.FindByEmployeeAndPeriod(ctx, companyID, employeeID, year, month)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, payrollerrors.ErrPayslipNotFound
			}
			return nil, err
		}

		pdf, err := renderPayslipPDF(payslip)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if err := s.rdb.Set(ctx, cacheKey, pdf, payslipPDFCacheTTL).Err(); err != nil {
				s.logger.Warn("payslip pdf cache write failed", zap.Error(err))
			}
		}
		return pdf, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func pdfCacheKey(companyID, employeeID string, year, month int) string {
	return fmt.Sprintf("payslips:pdf:%s:%s:%04d-%02d", companyID, employeeID, year, month)
}

func (s *service) invalidatePDFCache(ctx context.Context, companyID, employeeID string, year, month int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, pdfCacheKey(companyID, employeeID, year, month)).Err(); err != nil {
		s.logger.Warn("payslip pdf cache invalidation failed", zap.Error(err))
	}
}

func mapSalaryToResponse(salary EmployeeSalary) SalaryResponse {
	return SalaryResponse{
		ID:            salary.ID.String(),
		EmployeeID:    salary.EmployeeID.String(),
		BaseSalary:    salary.BaseSalary.StringFixed(2),
		OvertimeRate:  salary.OvertimeRate.String(),
		EffectiveDate: salary.EffectiveDate.Format("2006-01-02"),
	}
}

func mapSummaryToResponse(summary MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		EmployeeID:        summary.EmployeeID.String(),
		Year:              summary.Year,
		Month:             summary.Month,
		PresentDays:       summary.PresentDays,
		LateDays:          summary.LateDays,
		EarlyLeaveDays:    summary.EarlyLeaveDays,
		HalfDays:          summary.HalfDays,
		LeaveDays:         summary.LeaveDays,
		WorkHours:         summary.WorkHours.String(),
		OvertimeHours:     summary.OvertimeHours.String(),
		LateMinutes:       summary.LateMinutes,
		EarlyLeaveMinutes: summary.EarlyLeaveMinutes,
	}
}

func mapPayslipToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:                  p.ID.String(),
		EmployeeID:          p.EmployeeID.String(),
		Year:                p.Year,
		Month:               p.Month,
		BaseSalary:          p.BaseSalary.StringFixed(2),
		OvertimePay:         p.OvertimePay.StringFixed(2),
		LateDeduction:       p.LateDeduction.StringFixed(2),
		EarlyLeaveDeduction: p.EarlyLeaveDeduction.StringFixed(2),
		NetSalary:           p.NetSalary.StringFixed(2),
		Status:              p.Status,
	}
	if p.FinalizedBy != nil {
		v := p.FinalizedBy.String()
		resp.FinalizedBy = &v
	}
	if p.FinalizedAt != nil {
		v := p.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &v
	}
	return resp
}
