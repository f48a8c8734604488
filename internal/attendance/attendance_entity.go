package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Attendance is the one-row-per-employee-per-day record. The composite
// unique index is the storage-level guarantee that concurrent check-ins for
// the same employee-day cannot both create a row.
type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	CheckIn        *time.Time `gorm:"column:check_in;type:timestamptz"`
	CheckOut       *time.Time `gorm:"column:check_out;type:timestamptz"`

	CheckInLatitude   *float64 `gorm:"column:check_in_latitude"`
	CheckInLongitude  *float64 `gorm:"column:check_in_longitude"`
	CheckInAccuracy   *float64 `gorm:"column:check_in_accuracy"`
	CheckInMocked     bool     `gorm:"column:check_in_mocked;not null;default:false"`
	CheckOutLatitude  *float64 `gorm:"column:check_out_latitude"`
	CheckOutLongitude *float64 `gorm:"column:check_out_longitude"`
	CheckOutAccuracy  *float64 `gorm:"column:check_out_accuracy"`
	CheckOutMocked    bool     `gorm:"column:check_out_mocked;not null;default:false"`

	Status        Status          `gorm:"column:status;type:varchar(20);not null;default:'PRESENT'"`
	WorkHours     decimal.Decimal `gorm:"column:work_hours;type:numeric(10,6);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"column:overtime_hours;type:numeric(10,6);not null;default:0"`
	Note          *string         `gorm:"column:note;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// RosterRow is the read-side projection for department and company rosters:
// an attendance row joined with the owning employee's display name. The join
// is explicit, no preloaded object graph.
type RosterRow struct {
	Attendance
	FullName string `gorm:"column:full_name"`
}
