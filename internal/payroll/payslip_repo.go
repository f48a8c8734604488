package payroll

import (
	"context"
	"database/sql"

	"go-presensi/internal/shared/connection"
	"go-presensi/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type PayslipRepository interface {
	WithTx(tx *sql.Tx) PayslipRepository
	Create(ctx context.Context, payslip *Payslip) error
	Update(ctx context.Context, payslip *Payslip) error
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*Payslip, error)
	FindAllByCompanyAndPeriod(ctx context.Context, companyID string, year, month int) ([]Payslip, error)
}

type payslipRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewPayslipRepository(db *gorm.DB) PayslipRepository {
	return &payslipRepository{db: db}
}

func (r *payslipRepository) WithTx(tx *sql.Tx) PayslipRepository {
	return &payslipRepository{db: r.db, tx: tx}
}

func (r *payslipRepository) conn(ctx context.Context) *gorm.DB {
	return connection.TxSession(ctx, r.db, r.tx)
}

func (r *payslipRepository) Create(ctx context.Context, payslip *Payslip) error {
	return r.conn(ctx).Create(payslip).Error
}

func (r *payslipRepository) Update(ctx context.Context, payslip *Payslip) error {
	return r.conn(ctx).Save(payslip).Error
}

func (r *payslipRepository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*Payslip, error) {
	var p Payslip
	err := r.conn(ctx).
		Scopes(tenant.ForEmployee(companyID, employeeID)).
		Where("year = ? AND month = ?", year, month).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *payslipRepository) FindAllByCompanyAndPeriod(ctx context.Context, companyID string, year, month int) ([]Payslip, error) {
	var rows []Payslip
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("year = ? AND month = ?", year, month).
		Order("employee_id ASC").
		Find(&rows).Error
	return rows, err
}
