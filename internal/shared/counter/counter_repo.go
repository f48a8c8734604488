package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository

// Repository hands out gapless per-company sequence values, keyed by counter
// type (e.g. "employee_number"). Concurrent callers are serialized by the
// row-level conflict on (company_id, counter_type).
type Repository interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	const query = `
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value`

	var next int64
	if err := r.db.WithContext(ctx).Raw(query, companyID, counterType).Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("next %s counter for company %s: %w", counterType, companyID, err)
	}
	return next, nil
}
