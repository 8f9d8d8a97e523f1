package db

import (
	"errors"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

func init() {
	// sqlx は "sqlite" を知らないので ? バインドを登録しておく
	sqlx.BindDriver(string(SQLite), sqlx.QUESTION)
}

func (d Dialect) DriverName() string { return string(d) }

// ForUpdate: 行ロック句。SQLite は _txlock=immediate でトランザクション単位に直列化済み
func (d Dialect) ForUpdate() string {
	if d == MySQL {
		return " FOR UPDATE"
	}
	return ""
}

func DialectOf(db *sqlx.DB) Dialect {
	if db.DriverName() == string(SQLite) {
		return SQLite
	}
	return MySQL
}

// IsDuplicate: UNIQUE 制約違反か
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
