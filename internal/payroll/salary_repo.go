package payroll

import (
	"context"
	"database/sql"

	"go-presensi/internal/shared/connection"
	"go-presensi/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type SalaryRepository interface {
	WithTx(tx *sql.Tx) SalaryRepository
	Create(ctx context.Context, salary *EmployeeSalary) error
	FindLatestByEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeSalary, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]EmployeeSalary, error)
}

type salaryRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewSalaryRepository(db *gorm.DB) SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) WithTx(tx *sql.Tx) SalaryRepository {
	return &salaryRepository{db: r.db, tx: tx}
}

func (r *salaryRepository) conn(ctx context.Context) *gorm.DB {
	return connection.TxSession(ctx, r.db, r.tx)
}

func (r *salaryRepository) Create(ctx context.Context, salary *EmployeeSalary) error {
	return r.conn(ctx).Create(salary).Error
}

func (r *salaryRepository) FindLatestByEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.conn(ctx).
		Scopes(tenant.ForEmployee(companyID, employeeID)).
		Order("effective_date DESC").
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

func (r *salaryRepository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]EmployeeSalary, error) {
	var rows []EmployeeSalary
	err := r.conn(ctx).
		Scopes(tenant.ForEmployee(companyID, employeeID)).
		Order("effective_date DESC").
		Find(&rows).Error
	return rows, err
}
