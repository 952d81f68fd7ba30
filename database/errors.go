package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

var (
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")
	// ErrInvalidReference is returned when a write points at a missing parent row.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
)

// Classify maps driver constraint errors onto ErrDuplicate and
// ErrInvalidReference. Other errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrInvalidReference
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return ErrDuplicate
		case mysqlNoReferencedRow:
			return ErrInvalidReference
		}
	}

	return err
}
