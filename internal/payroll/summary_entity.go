package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlySummary accumulates one employee's closed attendance days for a
// calendar month. It is maintained exclusively by the attendance day-closed
// consumer; salary computation only reads it.
type MonthlySummary struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_summary_employee_period"`
	Year       int       `gorm:"column:year;not null;uniqueIndex:uq_summary_employee_period"`
	Month      int       `gorm:"column:month;not null;uniqueIndex:uq_summary_employee_period"`

	PresentDays    int `gorm:"column:present_days;not null;default:0"`
	LateDays       int `gorm:"column:late_days;not null;default:0"`
	EarlyLeaveDays int `gorm:"column:early_leave_days;not null;default:0"`
	HalfDays       int `gorm:"column:half_days;not null;default:0"`
	LeaveDays      int `gorm:"column:leave_days;not null;default:0"`

	WorkHours         decimal.Decimal `gorm:"column:work_hours;type:numeric(10,6);not null;default:0"`
	OvertimeHours     decimal.Decimal `gorm:"column:overtime_hours;type:numeric(10,6);not null;default:0"`
	LateMinutes       int             `gorm:"column:late_minutes;not null;default:0"`
	EarlyLeaveMinutes int             `gorm:"column:early_leave_minutes;not null;default:0"`

	// LastFoldedDate makes redelivered day-closed events no-ops. Events are
	// ordered per employee, so a day at or before this date was already folded.
	LastFoldedDate time.Time `gorm:"column:last_folded_date;type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MonthlySummary) TableName() string {
	return "attendance_monthly_summaries"
}
