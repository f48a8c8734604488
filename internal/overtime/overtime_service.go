package overtime

import (
	"context"
	"database/sql"
	"errors"
	"time"

	overtimeerrors "go-presensi/internal/overtime/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// maxDailyHours caps a single overtime declaration.
var maxDailyHours = decimal.NewFromInt(12)

//go:generate mockgen -source=overtime_service.go -destination=mock/overtime_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, employeeID string, req CreateOvertimeRequest) (OvertimeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]OvertimeResponse, error)
	GetMy(ctx context.Context, companyID, employeeID string) ([]OvertimeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (OvertimeResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (OvertimeResponse, error)
	Reject(ctx context.Context, companyID, actorID, id string) (OvertimeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("overtime.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("overtime.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, employeeID string, req CreateOvertimeRequest) (OvertimeResponse, error) {
	s.logger.Debug("create overtime requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("overtime_date", req.OvertimeDate),
	)

	overtimeDate, err := time.Parse("2006-01-02", req.OvertimeDate)
	if err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidDateFormat
	}
	hours := decimal.NewFromFloat(req.Hours)
	if hours.LessThanOrEqual(decimal.Zero) || hours.GreaterThan(maxDailyHours) {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidHours
	}

	o := &OvertimeRequest{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		EmployeeID:   uuid.MustParse(employeeID),
		OvertimeDate: overtimeDate,
		Hours:        hours,
		Reason:       req.Reason,
		Status:       StatusPending,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, overtimeerrors.ErrOvertimeAlreadyRequested) {
			s.logger.Warn("create overtime duplicate date",
				zap.String("employee_id", employeeID),
				zap.String("overtime_date", req.OvertimeDate),
			)
		} else {
			s.logger.Error("create overtime persist failed", zap.Error(err))
		}
		return OvertimeResponse{}, mapped
	}

	s.logger.Info("create overtime success", zap.String("overtime_id", o.ID.String()))
	return mapToResponse(*o), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]OvertimeResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetMy(ctx context.Context, companyID, employeeID string) ([]OvertimeResponse, error) {
	rows, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (OvertimeResponse, error) {
	o, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
		}
		return OvertimeResponse{}, err
	}
	return mapToResponse(*o), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (OvertimeResponse, error) {
	return s.transition(ctx, companyID, actorID, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id string) (OvertimeResponse, error) {
	return s.transition(ctx, companyID, actorID, id, StatusRejected)
}

func (s *service) transition(ctx context.Context, companyID, actorID, id, targetStatus string) (OvertimeResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition overtime begin tx failed", zap.Error(err))
		return OvertimeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	o, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
		}
		return OvertimeResponse{}, err
	}
	if o.Status != StatusPending {
		s.logger.Warn("transition overtime status invalid",
			zap.String("overtime_id", id),
			zap.String("from_status", o.Status),
			zap.String("to_status", targetStatus),
		)
		return OvertimeResponse{}, overtimeerrors.ErrInvalidStatusTransition
	}

	o.Status = targetStatus
	if targetStatus == StatusApproved {
		now := time.Now().UTC()
		o.ApprovedBy = &actorUUID
		o.ApprovedAt = &now
	}

	if err := qtx.Update(ctx, o); err != nil {
		s.logger.Error("transition overtime persist failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OvertimeResponse{}, err
	}

	s.logger.Info("transition overtime status success",
		zap.String("overtime_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*o), nil
}

func mapToResponse(o OvertimeRequest) OvertimeResponse {
	resp := OvertimeResponse{
		ID:           o.ID.String(),
		CompanyID:    o.CompanyID.String(),
		EmployeeID:   o.EmployeeID.String(),
		OvertimeDate: o.OvertimeDate.Format("2006-01-02"),
		Hours:        o.Hours.StringFixed(2),
		Reason:       o.Reason,
		Status:       o.Status,
	}
	if o.ApprovedBy != nil {
		v := o.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if o.ApprovedAt != nil {
		v := o.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(rows []OvertimeRequest) []OvertimeResponse {
	resp := make([]OvertimeResponse, len(rows))
	for i, o := range rows {
		resp[i] = mapToResponse(o)
	}
	return resp
}
