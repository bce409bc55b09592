package employee

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	employeeerrors "go-timeoff/internal/employee/errors"
)

// mapCreateError turns a unique-email violation into ErrEmailTaken. The
// pre-insert lookup already catches most duplicates; this covers the race
// between the lookup and the insert.
func mapCreateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "email") {
			return employeeerrors.ErrEmailTaken
		}
		return err
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "email") {
		return employeeerrors.ErrEmailTaken
	}

	return err
}
