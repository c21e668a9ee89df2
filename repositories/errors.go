package repositories

import (
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/promptdeck/promptdeck-backend/models"
)

func IsUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Maps a unique constraint violation to a ConflictError, other errors are returned as is
func wrapUniqueViolation(err error, msg string) error {
	if IsUniqueViolationError(err) {
		return errors.Wrap(models.ConflictError, msg)
	}
	return err
}
