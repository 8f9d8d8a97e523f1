// Package clock はサービス層の現在時刻。SQL の NOW() は使わない
package clock

import (
	"sync"
	"time"

	"shareit-backend/internal/platform/db"
)

type Clock interface{ Now() time.Time }

type Real struct{}

func (Real) Now() time.Time { return db.Instant(time.Now()) }

// Manual: テスト用に進められる時計
type Manual struct {
	mu  sync.Mutex
	cur time.Time
}

func NewManual(start time.Time) *Manual { return &Manual{cur: db.Instant(start)} }

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.cur = db.Instant(t)
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = m.cur.Add(d)
	return m.cur
}
