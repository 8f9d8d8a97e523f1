package db

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Instant: DB に保存する時刻の正規化（UTC・マイクロ秒。DATETIME(6) に合わせる）
func Instant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// Time: DATETIME 列のスキャン用。
// MySQL(parseTime=true) は time.Time、SQLite は宣言型によって文字列で返すことがあるので両方受ける
type Time struct{ time.Time }

func (t *Time) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	}
	return fmt.Errorf("db.Time: unsupported type %T", src)
}

func (t *Time) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("db.Time: cannot parse %q", s)
}

func (t Time) Value() (driver.Value, error) {
	return Instant(t.Time), nil
}
