package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PayslipStatusDraft     = "DRAFT"
	PayslipStatusFinalized = "FINALIZED"
)

// Payslip is one employee's computed pay for a calendar month. Recomputing a
// DRAFT payslip overwrites it; a FINALIZED one is immutable.
type Payslip struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_payslip_employee_period"`
	Year       int       `gorm:"column:year;not null;uniqueIndex:uq_payslip_employee_period"`
	Month      int       `gorm:"column:month;not null;uniqueIndex:uq_payslip_employee_period"`

	BaseSalary          decimal.Decimal `gorm:"column:base_salary;type:numeric(14,2);not null"`
	OvertimePay         decimal.Decimal `gorm:"column:overtime_pay;type:numeric(14,2);not null;default:0"`
	LateDeduction       decimal.Decimal `gorm:"column:late_deduction;type:numeric(14,2);not null;default:0"`
	EarlyLeaveDeduction decimal.Decimal `gorm:"column:early_leave_deduction;type:numeric(14,2);not null;default:0"`
	NetSalary           decimal.Decimal `gorm:"column:net_salary;type:numeric(14,2);not null"`

	Status      string     `gorm:"column:status;type:varchar(20);not null;default:'DRAFT'"`
	FinalizedBy *uuid.UUID `gorm:"column:finalized_by;type:uuid"`
	FinalizedAt *time.Time `gorm:"column:finalized_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Payslip) TableName() string {
	return "payslips"
}
