// Package dbtest はテスト用のインメモリ SQLite を用意する。
package dbtest

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"

	"shareit-backend/internal/platform/db"
)

// Open: スキーマ適用済みの独立した DB を返す。テスト終了時に閉じる
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	name := "memdb-" + ulid.Make().String()
	conn, err := db.Connect(db.DatabaseConfig{
		Driver: string(db.SQLite),
		Path:   name + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("dbtest: connect: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(context.Background(), conn); err != nil {
		t.Fatalf("dbtest: migrate: %v", err)
	}
	return conn
}

// Exec: フィクスチャ投入用。挿入した行の ID を返す
func Exec(t testing.TB, conn *sqlx.DB, query string, args ...any) int64 {
	t.Helper()
	res, err := conn.ExecContext(context.Background(), query, args...)
	if err != nil {
		t.Fatalf("dbtest: exec %q: %v", query, err)
	}
	id, _ := res.LastInsertId()
	return id
}
