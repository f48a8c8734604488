package attendance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-presensi/internal/attendance"
	attendanceerrors "go-presensi/internal/attendance/errors"
	"go-presensi/internal/events"
	"go-presensi/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	withTxFn                  func(tx *sql.Tx) attendance.Repository
	createFn                  func(ctx context.Context, a *attendance.Attendance) error
	updateFn                  func(ctx context.Context, a *attendance.Attendance) error
	findByEmployeeAndDateFn   func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error)
	findByEmployeeAndMonthFn  func(ctx context.Context, companyID, employeeID string, month, year int) ([]attendance.Attendance, error)
	findByDateAndDepartmentFn func(ctx context.Context, companyID, departmentID string, date time.Time) ([]attendance.RosterRow, error)
	findByDateFn              func(ctx context.Context, companyID string, date time.Time) ([]attendance.RosterRow, error)
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if f.findByEmployeeAndDateFn != nil {
		return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindByEmployeeAndMonth(ctx context.Context, companyID, employeeID string, month, year int) ([]attendance.Attendance, error) {
	if f.findByEmployeeAndMonthFn != nil {
		return f.findByEmployeeAndMonthFn(ctx, companyID, employeeID, month, year)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindByDateAndDepartment(ctx context.Context, companyID, departmentID string, date time.Time) ([]attendance.RosterRow, error) {
	if f.findByDateAndDepartmentFn != nil {
		return f.findByDateAndDepartmentFn(ctx, companyID, departmentID, date)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) FindByDate(ctx context.Context, companyID string, date time.Time) ([]attendance.RosterRow, error) {
	if f.findByDateFn != nil {
		return f.findByDateFn(ctx, companyID, date)
	}
	return nil, nil
}

type fakeDirectory struct {
	resolveFn func(ctx context.Context, companyID, userID string) (attendance.DirectoryEmployee, error)
}

func (f *fakeDirectory) ResolveByUserID(ctx context.Context, companyID, userID string) (attendance.DirectoryEmployee, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, companyID, userID)
	}
	return attendance.DirectoryEmployee{}, gorm.ErrRecordNotFound
}

type attendanceServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   attendance.Service
	repo      *fakeAttendanceRepository
	directory *fakeDirectory
}

// orgLoc pins the shift timezone so the tests do not depend on the host.
var orgLoc = time.FixedZone("ORG", 7*3600)

func setupAttendanceServiceTest(t *testing.T, now time.Time) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttendanceRepository{}
	directory := &fakeDirectory{}
	svc := attendance.NewService(
		db,
		repo,
		directory,
		attendance.DefaultPolicy(),
		attendance.NewFixedClock(now),
		orgLoc,
	)

	return &attendanceServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		directory: directory,
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

func resolveAs(employeeID, fullName string) func(ctx context.Context, companyID, userID string) (attendance.DirectoryEmployee, error) {
	return func(ctx context.Context, companyID, userID string) (attendance.DirectoryEmployee, error) {
		return attendance.DirectoryEmployee{ID: employeeID, FullName: fullName}, nil
	}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	userID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success within grace", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 8, 10, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			assert.Equal(t, uuid.MustParse(companyID), a.CompanyID)
			assert.Equal(t, uuid.MustParse(employeeID), a.EmployeeID)
			assert.Equal(t, "2026-03-09", a.AttendanceDate.Format("2006-01-02"))
			assert.Equal(t, attendance.StatusPresent, a.Status)
			assert.NotNil(t, a.CheckIn)
			return nil
		}

		resp, err := deps.service.CheckIn(ctx, companyID, userID, attendance.CheckInRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "PRESENT", resp.Status)
		assert.Equal(t, "Jane Doe", resp.EmployeeName)
		assert.NotNil(t, resp.CheckInTime)
		assert.Equal(t, "08:10:00", *resp.CheckInTime)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("late check-in past grace", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 8, 15, 1, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")

		resp, err := deps.service.CheckIn(ctx, companyID, userID, attendance.CheckInRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "LATE", resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee not found", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 8, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		req := attendance.CheckInRequest{}
		req.IsMockedLocation = true

		_, err := deps.service.CheckIn(ctx, companyID, userID, req)

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative mocked location never touches store", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 8, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		deps.repo.createFn = func(ctx context.Context, a *attendance.Attendance) error {
			t.Fatal("create must not be called for a mocked location")
			return nil
		}

		req := attendance.CheckInRequest{}
		req.IsMockedLocation = true

		_, err := deps.service.CheckIn(ctx, companyID, userID, req)

		assert.ErrorIs(t, err, attendanceerrors.ErrMockedLocation)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already checked in", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 9, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		checkIn := time.Date(2026, 3, 9, 8, 5, 0, 0, orgLoc)
		deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:         uuid.New(),
				CompanyID:  uuid.MustParse(companyID),
				EmployeeID: uuid.MustParse(employeeID),
				CheckIn:    &checkIn,
				Status:     attendance.StatusPresent,
			}, nil
		}

		_, err := deps.service.CheckIn(ctx, companyID, userID, attendance.CheckInRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("check-in on leave day keeps leave status", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 8, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:         uuid.New(),
				CompanyID:  uuid.MustParse(companyID),
				EmployeeID: uuid.MustParse(employeeID),
				Status:     attendance.StatusOnLeave,
			}, nil
		}

		var updated *attendance.Attendance
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			updated = a
			return nil
		}

		resp, err := deps.service.CheckIn(ctx, companyID, userID, attendance.CheckInRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "ON_LEAVE", resp.Status)
		assert.NotNil(t, updated)
		assert.NotNil(t, updated.CheckIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	userID := uuid.New().String()
	employeeID := uuid.New().String()

	existingRow := func(checkIn time.Time) *attendance.Attendance {
		return &attendance.Attendance{
			ID:             uuid.New(),
			CompanyID:      uuid.MustParse(companyID),
			EmployeeID:     uuid.MustParse(employeeID),
			AttendanceDate: time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC),
			CheckIn:        &checkIn,
			Status:         attendance.StatusPresent,
		}
	}

	t.Run("success with overtime", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 17, 30, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		checkIn := time.Date(2026, 3, 9, 8, 10, 0, 0, orgLoc)
		deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*attendance.Attendance, error) {
			return existingRow(checkIn), nil
		}

		var updated *attendance.Attendance
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			updated = a
			return nil
		}

		resp, err := deps.service.CheckOut(ctx, companyID, userID, attendance.CheckOutRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "PRESENT", resp.Status)
		assert.Equal(t, "9.333333", resp.WorkHours)
		assert.Equal(t, "0.5", resp.OvertimeHours)
		assert.NotNil(t, updated)
		assert.NotNil(t, updated.CheckOut)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("early check-out", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 15, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		checkIn := time.Date(2026, 3, 9, 8, 0, 0, 0, orgLoc)
		deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*attendance.Attendance, error) {
			return existingRow(checkIn), nil
		}

		resp, err := deps.service.CheckOut(ctx, companyID, userID, attendance.CheckOutRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "EARLY_LEAVE", resp.Status)
		assert.Equal(t, "7", resp.WorkHours)
		assert.Equal(t, "0", resp.OvertimeHours)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("late then early is half day", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 15, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		checkIn := time.Date(2026, 3, 9, 9, 0, 0, 0, orgLoc)
		row := existingRow(checkIn)
		row.Status = attendance.StatusLate
		deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*attendance.Attendance, error) {
			return row, nil
		}

		resp, err := deps.service.CheckOut(ctx, companyID, userID, attendance.CheckOutRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "HALF_DAY", resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative no record for today", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 17, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")

		_, err := deps.service.CheckOut(ctx, companyID, userID, attendance.CheckOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already checked out", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 18, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		checkIn := time.Date(2026, 3, 9, 8, 0, 0, 0, orgLoc)
		checkOut := time.Date(2026, 3, 9, 17, 0, 0, 0, orgLoc)
		row := existingRow(checkIn)
		row.CheckOut = &checkOut
		deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*attendance.Attendance, error) {
			return row, nil
		}

		_, err := deps.service.CheckOut(ctx, companyID, userID, attendance.CheckOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative mocked location after row checks", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 17, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		checkIn := time.Date(2026, 3, 9, 8, 0, 0, 0, orgLoc)
		deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*attendance.Attendance, error) {
			return existingRow(checkIn), nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *attendance.Attendance) error {
			t.Fatal("update must not be called for a mocked location")
			return nil
		}

		req := attendance.CheckOutRequest{}
		req.IsMockedLocation = true

		_, err := deps.service.CheckOut(ctx, companyID, userID, req)

		assert.ErrorIs(t, err, attendanceerrors.ErrMockedLocation)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_GetTodayStatus(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	userID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("no record yet", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 7, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")

		resp, err := deps.service.GetTodayStatus(ctx, companyID, userID)

		assert.NoError(t, err)
		assert.False(t, resp.CheckedIn)
		assert.False(t, resp.CheckedOut)
		assert.Equal(t, "NOT_CHECKED_IN", resp.Status)
		assert.Equal(t, "0", resp.WorkHours)
	})

	t.Run("checked in only", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 12, 0, 0, 0, orgLoc)
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		checkIn := time.Date(2026, 3, 9, 8, 5, 0, 0, orgLoc)
		deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{
				ID:         uuid.New(),
				CompanyID:  uuid.MustParse(companyID),
				EmployeeID: uuid.MustParse(employeeID),
				CheckIn:    &checkIn,
				Status:     attendance.StatusPresent,
			}, nil
		}

		resp, err := deps.service.GetTodayStatus(ctx, companyID, userID)

		assert.NoError(t, err)
		assert.True(t, resp.CheckedIn)
		assert.False(t, resp.CheckedOut)
		assert.NotNil(t, resp.CheckInTime)
		assert.Equal(t, "08:05:00", *resp.CheckInTime)
	})
}

func TestAttendanceService_GetMyAttendance(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	userID := uuid.New().String()
	employeeID := uuid.New().String()
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, orgLoc)

	t.Run("success", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		deps.directory.resolveFn = resolveAs(employeeID, "Jane Doe")
		deps.repo.findByEmployeeAndMonthFn = func(ctx context.Context, cid, eid string, month, year int) ([]attendance.Attendance, error) {
			assert.Equal(t, 3, month)
			assert.Equal(t, 2026, year)
			return []attendance.Attendance{
				{
					ID:             uuid.New(),
					CompanyID:      uuid.MustParse(companyID),
					EmployeeID:     uuid.MustParse(employeeID),
					AttendanceDate: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
					Status:         attendance.StatusPresent,
				},
			}, nil
		}

		resp, err := deps.service.GetMyAttendance(ctx, companyID, userID, 3, 2026)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "2026-03-06", resp[0].AttendanceDate)
	})

	t.Run("negative invalid month", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		_, err := deps.service.GetMyAttendance(ctx, companyID, userID, 13, 2026)

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonth)
	})
}

func TestAttendanceService_GetAllAttendance(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, orgLoc)

	t.Run("success", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		deps.repo.findByDateFn = func(ctx context.Context, cid string, date time.Time) ([]attendance.RosterRow, error) {
			assert.Equal(t, "2026-03-09", date.Format("2006-01-02"))
			return []attendance.RosterRow{
				{
					Attendance: attendance.Attendance{
						ID:             uuid.New(),
						CompanyID:      uuid.MustParse(companyID),
						EmployeeID:     uuid.New(),
						AttendanceDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
						Status:         attendance.StatusLate,
					},
					FullName: "Jane Doe",
				},
			}, nil
		}

		resp, err := deps.service.GetAllAttendance(ctx, companyID, "2026-03-09")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Jane Doe", resp[0].EmployeeName)
		assert.Equal(t, "LATE", resp[0].Status)
	})

	t.Run("negative bad date", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		_, err := deps.service.GetAllAttendance(ctx, companyID, "09-03-2026")

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFormat)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t, now)
		defer deps.db.Close()

		deps.repo.findByDateFn = func(ctx context.Context, cid string, date time.Time) ([]attendance.RosterRow, error) {
			return nil, errors.New("db error")
		}

		_, err := deps.service.GetAllAttendance(ctx, companyID, "2026-03-09")

		assert.Error(t, err)
	})
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(context.Context, string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(context.Context, string, string) error { return nil }

func TestAttendanceService_CheckOutStagesDayClosedEvent(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	userID := uuid.New().String()
	employeeID := uuid.New().String()

	now := time.Date(2026, 3, 9, 17, 30, 0, 0, orgLoc)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeAttendanceRepository{}
	directory := &fakeDirectory{}
	outbox := &fakeOutboxRepository{}
	svc := attendance.NewServiceWithOutbox(
		db,
		repo,
		directory,
		outbox,
		attendance.DefaultPolicy(),
		attendance.NewFixedClock(now),
		orgLoc,
	)

	expectTx(t, sqlMock, true)
	directory.resolveFn = resolveAs(employeeID, "Jane Doe")
	checkIn := time.Date(2026, 3, 9, 8, 0, 0, 0, orgLoc)
	repo.findByEmployeeAndDateFn = func(ctx context.Context, cid, eid string, date time.Time) (*attendance.Attendance, error) {
		return &attendance.Attendance{
			ID:             uuid.New(),
			CompanyID:      uuid.MustParse(companyID),
			EmployeeID:     uuid.MustParse(employeeID),
			AttendanceDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			CheckIn:        &checkIn,
			Status:         attendance.StatusPresent,
		}, nil
	}

	var staged *kafka.OutboxEvent
	outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		staged = &event
		return nil
	}

	_, err = svc.CheckOut(ctx, companyID, userID, attendance.CheckOutRequest{})
	assert.NoError(t, err)
	assert.NotNil(t, staged)

	// Keyed by employee, not by attendance row, so one employee's days share
	// a partition and arrive at the consumer in order.
	assert.Equal(t, employeeID, staged.AggregateID)
	assert.Equal(t, events.AttendanceDayClosedTopic, staged.Topic)
	assert.Equal(t, kafka.OutboxStatusPending, staged.Status)

	var event events.AttendanceDayClosedEvent
	assert.NoError(t, json.Unmarshal(staged.Payload, &event))
	assert.Equal(t, employeeID, event.EmployeeID)
	assert.Equal(t, "2026-03-09", event.AttendanceDate)

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
