package department_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-presensi/internal/department"
	departmenterrors "go-presensi/internal/department/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepository struct {
	withTxFn                      func(tx *sql.Tx) department.Repository
	createFn                      func(ctx context.Context, dept *department.Department) error
	findAllByCompanyFn            func(ctx context.Context, companyID string) ([]department.Department, error)
	findByIDAndCompanyFn          func(ctx context.Context, companyID, id string) (*department.Department, error)
	employeeBelongsToDepartmentFn func(ctx context.Context, companyID, departmentID, employeeID string) (bool, error)
	updateFn                      func(ctx context.Context, dept *department.Department) error
	deleteFn                      func(ctx context.Context, companyID, id string) error
}

func (f *fakeDepartmentRepository) WithTx(tx *sql.Tx) department.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeDepartmentRepository) Create(ctx context.Context, dept *department.Department) error {
	if f.createFn != nil {
		return f.createFn(ctx, dept)
	}
	return nil
}

func (f *fakeDepartmentRepository) FindAllByCompany(ctx context.Context, companyID string) ([]department.Department, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeDepartmentRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*department.Department, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepository) EmployeeBelongsToDepartment(ctx context.Context, companyID, departmentID, employeeID string) (bool, error) {
	if f.employeeBelongsToDepartmentFn != nil {
		return f.employeeBelongsToDepartmentFn(ctx, companyID, departmentID, employeeID)
	}
	return true, nil
}

func (f *fakeDepartmentRepository) Update(ctx context.Context, dept *department.Department) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, dept)
	}
	return nil
}

func (f *fakeDepartmentRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type departmentServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service department.Service
	repo    *fakeDepartmentRepository
}

func setupDepartmentServiceTest(t *testing.T) *departmentServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeDepartmentRepository{}
	svc := department.NewService(db, repo)

	return &departmentServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
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

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, dept *department.Department) error {
			assert.Equal(t, uuid.MustParse(companyID), dept.CompanyID)
			assert.Equal(t, "Engineering", dept.Name)
			return nil
		}

		resp, err := deps.service.Create(ctx, companyID, department.CreateDepartmentRequest{
			Name:        "Engineering",
			Description: "Product engineering",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative persist error", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, dept *department.Department) error {
			return errors.New("db error")
		}

		_, err := deps.service.Create(ctx, companyID, department.CreateDepartmentRequest{Name: "Engineering"})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_AssignHead(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	departmentID := uuid.New().String()
	employeeID := uuid.New().String()

	dept := func(headID *uuid.UUID) *department.Department {
		return &department.Department{
			ID:             uuid.MustParse(departmentID),
			CompanyID:      uuid.MustParse(companyID),
			Name:           "Engineering",
			HeadEmployeeID: headID,
		}
	}

	t.Run("success", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*department.Department, error) {
			return dept(nil), nil
		}

		var updated *department.Department
		deps.repo.updateFn = func(ctx context.Context, d *department.Department) error {
			updated = d
			return nil
		}

		resp, err := deps.service.AssignHead(ctx, companyID, departmentID, department.AssignHeadRequest{EmployeeID: employeeID})

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.HeadEmployeeID)
		assert.NotNil(t, updated.HeadEmployeeID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already head", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		current := uuid.MustParse(employeeID)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*department.Department, error) {
			return dept(&current), nil
		}

		_, err := deps.service.AssignHead(ctx, companyID, departmentID, department.AssignHeadRequest{EmployeeID: employeeID})

		assert.ErrorIs(t, err, departmenterrors.ErrAlreadyHead)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee outside department", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*department.Department, error) {
			return dept(nil), nil
		}
		deps.repo.employeeBelongsToDepartmentFn = func(ctx context.Context, cid, did, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.AssignHead(ctx, companyID, departmentID, department.AssignHeadRequest{EmployeeID: employeeID})

		assert.ErrorIs(t, err, departmenterrors.ErrEmployeeNotInDepartment)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.AssignHead(ctx, companyID, departmentID, department.AssignHeadRequest{EmployeeID: employeeID})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	departmentID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*department.Department, error) {
			assert.Equal(t, departmentID, id)
			return &department.Department{
				ID:        uuid.MustParse(departmentID),
				CompanyID: uuid.MustParse(companyID),
				Name:      "Finance",
			}, nil
		}

		resp, err := deps.service.GetByID(ctx, companyID, departmentID)

		assert.NoError(t, err)
		assert.Equal(t, "Finance", resp.Name)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, companyID, departmentID)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	departmentID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		called := false
		deps.repo.deleteFn = func(ctx context.Context, cid, id string) error {
			called = true
			assert.Equal(t, departmentID, id)
			return nil
		}

		err := deps.service.Delete(ctx, companyID, departmentID)

		assert.NoError(t, err)
		assert.True(t, called)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
