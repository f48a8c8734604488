package departmenterrors

import (
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotInDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this department",
		http.StatusBadRequest,
	)
	ErrAlreadyHead = apperror.New(
		apperror.CodeConflict,
		"employee is already head of this department",
		http.StatusConflict,
	)
)
