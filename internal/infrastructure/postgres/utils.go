package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation indica si el error es una violación de constraint UNIQUE
// (código 23505 de PostgreSQL). Los upserts resuelven sus conflictos con
// ON CONFLICT; esto atrapa los inserts donde el duplicado sí es un error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
