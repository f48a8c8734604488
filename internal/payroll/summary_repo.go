package payroll

import (
	"context"
	"database/sql"

	"go-presensi/internal/shared/connection"
	"go-presensi/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=summary_repo.go -destination=mock/summary_repo_mock.go -package=mock
type SummaryRepository interface {
	WithTx(tx *sql.Tx) SummaryRepository
	FindForUpdate(ctx context.Context, companyID, employeeID string, year, month int) (*MonthlySummary, error)
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*MonthlySummary, error)
	FindAllByCompanyAndPeriod(ctx context.Context, companyID string, year, month int) ([]MonthlySummary, error)
	Create(ctx context.Context, summary *MonthlySummary) error
	Update(ctx context.Context, summary *MonthlySummary) error
}

type summaryRepository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) WithTx(tx *sql.Tx) SummaryRepository {
	return &summaryRepository{db: r.db, tx: tx}
}

func (r *summaryRepository) conn(ctx context.Context) *gorm.DB {
	return connection.TxSession(ctx, r.db, r.tx)
}

func (r *summaryRepository) FindForUpdate(ctx context.Context, companyID, employeeID string, year, month int) (*MonthlySummary, error) {
	var summary MonthlySummary
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.ForEmployee(companyID, employeeID)).
		Where("year = ? AND month = ?", year, month).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*MonthlySummary, error) {
	var summary MonthlySummary
	err := r.conn(ctx).
		Scopes(tenant.ForEmployee(companyID, employeeID)).
		Where("year = ? AND month = ?", year, month).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) FindAllByCompanyAndPeriod(ctx context.Context, companyID string, year, month int) ([]MonthlySummary, error) {
	var rows []MonthlySummary
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("year = ? AND month = ?", year, month).
		Order("employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *summaryRepository) Create(ctx context.Context, summary *MonthlySummary) error {
	return r.conn(ctx).Create(summary).Error
}

func (r *summaryRepository) Update(ctx context.Context, summary *MonthlySummary) error {
	return r.conn(ctx).Save(summary).Error
}
