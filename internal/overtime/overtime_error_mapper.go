package overtime

import (
	"errors"
	"strings"

	overtimeerrors "go-presensi/internal/overtime/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError folds uniqueness violations on (employee, date) into
// the domain conflict error.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_overtime_employee_date" {
			return overtimeerrors.ErrOvertimeAlreadyRequested
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_overtime_employee_date") {
		return overtimeerrors.ErrOvertimeAlreadyRequested
	}

	return err
}
