package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeSalary is the base salary effective from a given date. A default
// zero-amount row is seeded by the employee_created consumer; HR raises it
// afterwards. History is append-only, newest effective date wins.
type EmployeeSalary struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID    uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_employee_salary_effective"`
	BaseSalary    decimal.Decimal `gorm:"column:base_salary;type:numeric(14,2);not null;default:0"`
	OvertimeRate  decimal.Decimal `gorm:"column:overtime_rate;type:numeric(6,4);not null;default:1.5"`
	EffectiveDate time.Time       `gorm:"column:effective_date;type:date;not null;uniqueIndex:uq_employee_salary_effective"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (EmployeeSalary) TableName() string {
	return "employee_salaries"
}
