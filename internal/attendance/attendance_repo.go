package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-presensi/internal/shared/connection"
	"go-presensi/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, month, year int) ([]Attendance, error)
	FindByDateAndDepartment(ctx context.Context, companyID, departmentID string, date time.Time) ([]RosterRow, error)
	FindByDate(ctx context.Context, companyID string, date time.Time) ([]RosterRow, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.TxSession(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Scopes(tenant.ForEmployee(companyID, employeeID)).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, month, year int) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Scopes(tenant.ForEmployee(companyID, employeeID)).
		Where("EXTRACT(MONTH FROM attendance_date) = ?", month).
		Where("EXTRACT(YEAR FROM attendance_date) = ?", year).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByDateAndDepartment(ctx context.Context, companyID, departmentID string, date time.Time) ([]RosterRow, error) {
	var rows []RosterRow
	err := r.conn(ctx).
		Table("attendances").
		Select("attendances.*, employees.full_name").
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Where("attendances.company_id = ?", companyID).
		Where("employees.department_id = ?", departmentID).
		Where("attendances.attendance_date = ?", date.Format("2006-01-02")).
		Order("employees.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindByDate(ctx context.Context, companyID string, date time.Time) ([]RosterRow, error) {
	var rows []RosterRow
	err := r.conn(ctx).
		Table("attendances").
		Select("attendances.*, employees.full_name").
		Joins("JOIN employees ON employees.id = attendances.employee_id").
		Where("attendances.company_id = ?", companyID).
		Where("attendances.attendance_date = ?", date.Format("2006-01-02")).
		Order("employees.full_name ASC").
		Scan(&rows).Error
	return rows, err
}
