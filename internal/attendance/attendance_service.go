package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "go-presensi/internal/attendance/errors"
	"go-presensi/internal/events"
	"go-presensi/internal/messaging/kafka"
	"go-presensi/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DirectoryEmployee is the narrow slice of the employee directory the
// engine needs: identity plus display name. The engine never mutates
// employee records.
type DirectoryEmployee struct {
	ID       string
	FullName string
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type EmployeeDirectory interface {
	ResolveByUserID(ctx context.Context, companyID, userID string) (DirectoryEmployee, error)
}

type Service interface {
	CheckIn(ctx context.Context, companyID, userID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, companyID, userID string, req CheckOutRequest) (AttendanceResponse, error)
	GetTodayStatus(ctx context.Context, companyID, userID string) (TodayStatusResponse, error)
	GetMyAttendance(ctx context.Context, companyID, userID string, month, year int) ([]AttendanceResponse, error)
	GetDepartmentAttendance(ctx context.Context, companyID, departmentID, date string) ([]AttendanceResponse, error)
	GetAllAttendance(ctx context.Context, companyID, date string) ([]AttendanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	outbox    kafka.OutboxRepository
	policy    Policy
	clock     Clock
	loc       *time.Location
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	policy Policy,
	clock Clock,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, directory, nil, policy, clock, loc, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	outboxRepo kafka.OutboxRepository,
	policy Policy,
	clock Clock,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		outbox:    outboxRepo,
		policy:    policy,
		clock:     clock,
		loc:       loc,
		logger:    l,
	}
}

func (s *service) CheckIn(ctx context.Context, companyID, userID string, req CheckInRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("check-in requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
	)

	emp, err := s.resolveEmployee(ctx, companyID, userID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	if req.IsMockedLocation {
		s.logger.Warn("check-in rejected: mocked location",
			zap.String("employee_id", emp.ID),
		)
		return AttendanceResponse{}, attendanceerrors.ErrMockedLocation
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.clock.Now()
	today := dateOf(now)
	checkInTod := TimeOfDayOf(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, emp.ID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check-in lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if row != nil && row.CheckIn != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	created := false
	if row == nil {
		row = &Attendance{
			ID:             uuid.New(),
			CompanyID:      uuid.MustParse(companyID),
			EmployeeID:     uuid.MustParse(emp.ID),
			AttendanceDate: today,
		}
		created = true
	}

	row.CheckIn = &now
	row.CheckInLatitude = req.Latitude
	row.CheckInLongitude = req.Longitude
	row.CheckInAccuracy = req.Accuracy
	row.CheckInMocked = req.IsMockedLocation
	row.Status = s.policy.DeriveStatus(row.Status, &checkInTod, nil)
	if req.Note != nil {
		row.Note = req.Note
	}

	if created {
		err = qtx.Create(ctx, row)
	} else {
		err = qtx.Update(ctx, row)
	}
	if err != nil {
		s.logger.Error("check-in persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("check-in commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.ID),
		zap.String("status", string(row.Status)),
		zap.String("check_in", checkInTod.String()),
	)
	return s.mapToResponse(*row, emp.FullName), nil
}

func (s *service) CheckOut(ctx context.Context, companyID, userID string, req CheckOutRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("check-out requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
	)

	emp, err := s.resolveEmployee(ctx, companyID, userID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.clock.Now()
	today := dateOf(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, emp.ID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		s.logger.Error("check-out lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if row.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}
	if req.IsMockedLocation {
		s.logger.Warn("check-out rejected: mocked location",
			zap.String("employee_id", emp.ID),
		)
		return AttendanceResponse{}, attendanceerrors.ErrMockedLocation
	}

	checkInTod := TimeOfDayOf(row.CheckIn.In(s.loc))
	checkOutTod := TimeOfDayOf(now)

	row.CheckOut = &now
	row.CheckOutLatitude = req.Latitude
	row.CheckOutLongitude = req.Longitude
	row.CheckOutAccuracy = req.Accuracy
	row.CheckOutMocked = req.IsMockedLocation
	row.WorkHours = HoursBetween(checkInTod, checkOutTod)
	row.OvertimeHours = s.policy.OvertimeHours(checkOutTod)
	row.Status = s.policy.DeriveStatus(row.Status, &checkInTod, &checkOutTod)
	if req.Note != nil {
		row.Note = req.Note
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check-out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if s.outbox != nil {
		if err := s.stageDayClosedEvent(ctx, tx, rid, row); err != nil {
			s.logger.Error("check-out outbox persist failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("check-out commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out success",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.ID),
		zap.String("status", string(row.Status)),
		zap.String("work_hours", row.WorkHours.String()),
		zap.String("overtime_hours", row.OvertimeHours.String()),
	)
	return s.mapToResponse(*row, emp.FullName), nil
}

func (s *service) stageDayClosedEvent(ctx context.Context, tx *sql.Tx, rid string, row *Attendance) error {
	checkInTod := TimeOfDayOf(row.CheckIn.In(s.loc))
	checkOutTod := TimeOfDayOf(row.CheckOut.In(s.loc))

	event := events.AttendanceDayClosedEvent{
		EventType:         "attendance_day_closed",
		RequestID:         rid,
		CompanyID:         row.CompanyID.String(),
		EmployeeID:        row.EmployeeID.String(),
		AttendanceDate:    row.AttendanceDate.Format("2006-01-02"),
		Status:            string(row.Status),
		WorkHours:         row.WorkHours.String(),
		OvertimeHours:     row.OvertimeHours.String(),
		LateMinutes:       s.policy.LateMinutes(checkInTod),
		EarlyLeaveMinutes: s.policy.EarlyLeaveMinutes(checkOutTod),
		OccurredAt:        time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Keyed by employee, not by attendance row, so one employee's days land
	// on the same partition and arrive at the consumer in order.
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "attendance",
		AggregateID:   row.EmployeeID.String(),
		EventType:     event.EventType,
		Topic:         events.AttendanceDayClosedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetTodayStatus(ctx context.Context, companyID, userID string) (TodayStatusResponse, error) {
	emp, err := s.resolveEmployee(ctx, companyID, userID)
	if err != nil {
		return TodayStatusResponse{}, err
	}

	today := dateOf(s.clock.Now())
	row, err := s.repo.FindByEmployeeAndDate(ctx, companyID, emp.ID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TodayStatusResponse{
				WorkHours: "0",
				Status:    string(StatusNotCheckedIn),
			}, nil
		}
		return TodayStatusResponse{}, err
	}

	resp := TodayStatusResponse{
		CheckedIn:  row.CheckIn != nil,
		CheckedOut: row.CheckOut != nil,
		WorkHours:  row.WorkHours.String(),
		Status:     string(row.Status),
	}
	resp.CheckInTime = s.formatTimeOfDay(row.CheckIn)
	resp.CheckOutTime = s.formatTimeOfDay(row.CheckOut)
	return resp, nil
}

func (s *service) GetMyAttendance(ctx context.Context, companyID, userID string, month, year int) ([]AttendanceResponse, error) {
	if month < 1 || month > 12 {
		return nil, attendanceerrors.ErrInvalidMonth
	}
	emp, err := s.resolveEmployee(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByEmployeeAndMonth(ctx, companyID, emp.ID, month, year)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = s.mapToResponse(r, emp.FullName)
	}
	return res, nil
}

func (s *service) GetDepartmentAttendance(ctx context.Context, companyID, departmentID, date string) ([]AttendanceResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindByDateAndDepartment(ctx, companyID, departmentID, day)
	if err != nil {
		return nil, err
	}
	return s.mapRosterToResponse(rows), nil
}

func (s *service) GetAllAttendance(ctx context.Context, companyID, date string) ([]AttendanceResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindByDate(ctx, companyID, day)
	if err != nil {
		return nil, err
	}
	return s.mapRosterToResponse(rows), nil
}

func (s *service) resolveEmployee(ctx context.Context, companyID, userID string) (DirectoryEmployee, error) {
	emp, err := s.directory.ResolveByUserID(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DirectoryEmployee{}, attendanceerrors.ErrEmployeeNotFound
		}
		s.logger.Error("resolve employee failed", zap.Error(err))
		return DirectoryEmployee{}, err
	}
	return emp, nil
}

// dateOf normalizes an org-local instant to its calendar day, stored as
// midnight UTC so the date column is stable regardless of session timezone.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func (s *service) formatTimeOfDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := TimeOfDayOf(t.In(s.loc)).String()
	return &v
}

func (s *service) mapToResponse(a Attendance, fullName string) AttendanceResponse {
	return AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		EmployeeName:   fullName,
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		CheckInTime:    s.formatTimeOfDay(a.CheckIn),
		CheckOutTime:   s.formatTimeOfDay(a.CheckOut),
		Latitude:       a.CheckInLatitude,
		Longitude:      a.CheckInLongitude,
		Status:         string(a.Status),
		WorkHours:      a.WorkHours.String(),
		OvertimeHours:  a.OvertimeHours.String(),
		Note:           a.Note,
	}
}

func (s *service) mapRosterToResponse(rows []RosterRow) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = s.mapToResponse(r.Attendance, r.FullName)
	}
	return res
}
