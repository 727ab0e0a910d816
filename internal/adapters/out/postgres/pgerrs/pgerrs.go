// Package pgerrs classifies driver errors shared by the gorm repositories.
package pgerrs

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UniqueViolation is the PostgreSQL SQLSTATE for duplicate keys.
const UniqueViolation = "23505"

// IsUniqueViolation reports whether err is a duplicate key error from PostgreSQL
// or one already translated by gorm (TranslateError) for another dialect.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}

// IsNotFound reports whether err is gorm's missing record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
