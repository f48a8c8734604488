package overtime

import (
	"context"
	"database/sql"

	"go-presensi/internal/shared/connection"
	"go-presensi/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=overtime_repo.go -destination=mock/overtime_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, o *OvertimeRequest) error
	FindAllByCompany(ctx context.Context, companyID string) ([]OvertimeRequest, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]OvertimeRequest, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*OvertimeRequest, error)
	Update(ctx context.Context, o *OvertimeRequest) error
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

func (r *repository) Create(ctx context.Context, o *OvertimeRequest) error {
	return r.conn(ctx).Create(o).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]OvertimeRequest, error) {
	var rows []OvertimeRequest
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("overtime_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]OvertimeRequest, error) {
	var rows []OvertimeRequest
	err := r.conn(ctx).
		Scopes(tenant.ForEmployee(companyID, employeeID)).
		Order("overtime_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*OvertimeRequest, error) {
	var o OvertimeRequest
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Update(ctx context.Context, o *OvertimeRequest) error {
	return r.conn(ctx).Save(o).Error
}
