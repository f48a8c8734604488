package payrollerrors

import (
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period, expected month=1..12 and a four-digit year",
		http.StatusBadRequest,
	)
	ErrInvalidSalaryAmount = apperror.New(
		apperror.CodeInvalidInput,
		"base salary must be a non-negative amount",
		http.StatusBadRequest,
	)
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"no base salary registered for employee",
		http.StatusNotFound,
	)
	ErrSalaryAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"base salary already registered for this effective date",
		http.StatusConflict,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found for period",
		http.StatusNotFound,
	)
	ErrNoAttendanceForPeriod = apperror.New(
		apperror.CodeNotFound,
		"no attendance summary recorded for period",
		http.StatusNotFound,
	)
	ErrPayslipFinalized = apperror.New(
		apperror.CodeInvalidState,
		"payslip for this period is already finalized",
		http.StatusBadRequest,
	)
)
