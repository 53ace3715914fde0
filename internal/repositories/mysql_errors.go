package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlDuplicateEntry = 1062
	mysqlForeignKey     = 1452
)

func isMySQLError(err error, number uint16) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == number
}

// IsForeignKeyError reports a MySQL/MariaDB foreign key failure, which means a
// write referenced a row that does not exist.
func IsForeignKeyError(err error) bool {
	return isMySQLError(err, mysqlForeignKey)
}
