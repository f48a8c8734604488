package attendance

import (
	"errors"
	"strings"

	attendanceerrors "go-presensi/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError folds storage-level uniqueness violations into the
// domain error: when two concurrent check-ins race on the same employee-day,
// the loser hits uq_attendance_employee_date and must see AlreadyCheckedIn,
// not a raw constraint error.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_date" {
			return attendanceerrors.ErrAlreadyCheckedIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_employee_date") {
		return attendanceerrors.ErrAlreadyCheckedIn
	}

	return err
}
