package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrRowInUse is returned when a delete is rejected because other rows
// still reference the target through a foreign key. The referenced row and
// the ledger are left unchanged.
var ErrRowInUse = errors.New("record is referenced by other records")

// isForeignKeyViolation detects foreign key constraint failures for both
// supported drivers.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		// 1451: row is still referenced, 1452: referenced row missing
		return mysqlErr.Number == 1451 || mysqlErr.Number == 1452
	}

	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
