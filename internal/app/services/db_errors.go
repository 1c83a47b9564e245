package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// uniqueViolation reports whether err is a unique index violation and, when the
// driver exposes it, which constraint or columns were involved.
func uniqueViolation(err error) (bool, string) {
	if err == nil {
		return false, ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true, pgErr.ConstraintName
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, ""
	}

	// sqlite: "UNIQUE constraint failed: table.col, table.col"
	msg := err.Error()
	if idx := strings.Index(msg, "UNIQUE constraint failed:"); idx >= 0 {
		return true, msg[idx:]
	}

	return false, ""
}
