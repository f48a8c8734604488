package overtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OvertimeRequest struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_overtime_employee_date"`

	OvertimeDate time.Time       `gorm:"column:overtime_date;type:date;not null;uniqueIndex:uq_overtime_employee_date"`
	Hours        decimal.Decimal `gorm:"column:hours;type:numeric(5,2);not null"`
	Reason       string          `gorm:"column:reason;type:text"`

	Status     string     `gorm:"column:status;type:varchar(20);not null;default:'PENDING'"`
	ApprovedBy *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovedAt *time.Time `gorm:"column:approved_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (OvertimeRequest) TableName() string {
	return "overtime_requests"
}
