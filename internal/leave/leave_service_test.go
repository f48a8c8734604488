package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-presensi/internal/attendance"
	"go-presensi/internal/leave"
	leaveerrors "go-presensi/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn                 func(tx *sql.Tx) leave.Repository
	createFn                 func(ctx context.Context, l *leave.Leave) error
	findAllByCompanyFn       func(ctx context.Context, companyID string) ([]leave.Leave, error)
	findAllByEmployeeFn      func(ctx context.Context, companyID, employeeID string) ([]leave.Leave, error)
	findByIDAndCompanyFn     func(ctx context.Context, companyID, id string) (*leave.Leave, error)
	updateFn                 func(ctx context.Context, l *leave.Leave) error
	employeeBelongsToCompany func(ctx context.Context, companyID, employeeID string) (bool, error)
	hasOverlappingPeriodFn   func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAllByCompany(ctx context.Context, companyID string) ([]leave.Leave, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]leave.Leave, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	if f.employeeBelongsToCompany != nil {
		return f.employeeBelongsToCompany(ctx, companyID, employeeID)
	}
	return true, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, companyID, employeeID, startDate, endDate, excludeID)
	}
	return false, nil
}

type fakeAttendanceStore struct {
	findByEmployeeAndDateFn func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error)
	createFn                func(ctx context.Context, a *attendance.Attendance) error
	updateFn                func(ctx context.Context, a *attendance.Attendance) error
}

func (f *fakeAttendanceStore) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceStore) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceStore) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceStore) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if f.findByEmployeeAndDateFn != nil {
		return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceStore) FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, month, year int) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceStore) FindByDateAndDepartment(ctx context.Context, companyID, departmentID string, date time.Time) ([]attendance.RosterRow, error) {
	return nil, nil
}

func (f *fakeAttendanceStore) FindByDate(ctx context.Context, companyID string, date time.Time) ([]attendance.RosterRow, error) {
	return nil, nil
}

type leaveServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     leave.Service
	repo        *fakeLeaveRepository
	attendances *fakeAttendanceStore
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	attendances := &fakeAttendanceStore{}
	svc := leave.NewService(db, repo, attendances)

	return &leaveServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		attendances: attendances,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-03-10",
			EndDate:    "2026-03-12",
			Reason:     "Family event",
		}

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, cid, eid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			assert.Nil(t, excludeID)
			assert.Equal(t, "2026-03-10", startDate.Format("2006-01-02"))
			assert.Equal(t, "2026-03-12", endDate.Format("2006-01-02"))
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			assert.Equal(t, uuid.MustParse(companyID), l.CompanyID)
			assert.Equal(t, uuid.MustParse(employeeID), l.EmployeeID)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, leave.StatusPending, l.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, actorID, resp.CreatedBy)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlap", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, cid, eid string, startDate, endDate time.Time, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-03-10",
			EndDate:    "2026-03-11",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee outside company", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.employeeBelongsToCompany = func(ctx context.Context, cid, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-03-10",
			EndDate:    "2026-03-11",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotInCompany)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative start after end", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  "2026-03-12",
			EndDate:    "2026-03-10",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	leaveID := uuid.New().String()

	pendingLeave := func(status string, start, end time.Time) *leave.Leave {
		return &leave.Leave{
			ID:         uuid.MustParse(leaveID),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: uuid.New(),
			LeaveType:  "ANNUAL",
			StartDate:  start,
			EndDate:    end,
			TotalDays:  int(end.Sub(start).Hours()/24) + 1,
			Status:     status,
			CreatedBy:  uuid.New(),
		}
	}

	t.Run("success marks covered days on leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return pendingLeave(leave.StatusSubmitted, start, end), nil
		}

		var created []time.Time
		deps.attendances.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			assert.Equal(t, attendance.StatusOnLeave, a.Status)
			created = append(created, a.AttendanceDate)
			return nil
		}

		resp, err := deps.service.Approve(ctx, companyID, actorID, leaveID)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, actorID, *resp.ApprovedBy)
		assert.Len(t, created, 3)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("checked-in day is left untouched", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return pendingLeave(leave.StatusSubmitted, day, day), nil
		}

		checkIn := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
		deps.attendances.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:      uuid.New(),
				CheckIn: &checkIn,
				Status:  attendance.StatusPresent,
			}, nil
		}
		deps.attendances.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			t.Fatal("a day with a check-in must not be overwritten")
			return nil
		}

		_, err := deps.service.Approve(ctx, companyID, actorID, leaveID)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative pending cannot be approved directly", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return pendingLeave(leave.StatusPending, day, day), nil
		}

		_, err := deps.service.Approve(ctx, companyID, actorID, leaveID)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, companyID, actorID, leaveID)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	leaveID := uuid.New().String()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	submitted := func() *leave.Leave {
		return &leave.Leave{
			ID:         uuid.MustParse(leaveID),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: uuid.New(),
			StartDate:  day,
			EndDate:    day,
			TotalDays:  1,
			Status:     leave.StatusSubmitted,
			CreatedBy:  uuid.New(),
		}
	}

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return submitted(), nil
		}

		resp, err := deps.service.Reject(ctx, companyID, actorID, leaveID, "headcount too low that week")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NotNil(t, resp.RejectionReason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative reason required", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) {
			return submitted(), nil
		}

		_, err := deps.service.Reject(ctx, companyID, actorID, leaveID, "")

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_GetMy(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByEmployeeFn = func(ctx context.Context, cid, eid string) ([]leave.Leave, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, employeeID, eid)
			return []leave.Leave{
				{
					ID:         uuid.New(),
					CompanyID:  uuid.MustParse(companyID),
					EmployeeID: uuid.MustParse(employeeID),
					LeaveType:  "SICK",
					StartDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
					EndDate:    time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
					TotalDays:  2,
					Status:     leave.StatusApproved,
					CreatedBy:  uuid.New(),
				},
			}, nil
		}

		resp, err := deps.service.GetMy(ctx, companyID, employeeID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "2026-04-01", resp[0].StartDate)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByEmployeeFn = func(ctx context.Context, cid, eid string) ([]leave.Leave, error) {
			return nil, errors.New("db error")
		}

		_, err := deps.service.GetMy(ctx, companyID, employeeID)

		assert.Error(t, err)
	})
}
