package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	errDuplicateEntry  = 1062
	errNoReferencedRow = 1452
	errLockWaitTimeout = 1205
	errDeadlockFound   = 1213
)

func IsDuplicateEntry(err error) bool {
	return hasCode(err, errDuplicateEntry)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, errNoReferencedRow)
}

func IsLockContention(err error) bool {
	return hasCode(err, errDeadlockFound) || hasCode(err, errLockWaitTimeout)
}

func hasCode(err error, code uint16) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == code
	}
	return false
}
