package bookings

import (
	"database/sql/driver"
	"fmt"

	"shareit-backend/internal/platform/apperr"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// 遷移表。APPROVED / REJECTED は終端
var transitions = map[Status][]Status{
	StatusWaiting:  {StatusApproved, StatusRejected},
	StatusApproved: nil,
	StatusRejected: nil,
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Decide: 所有者の承認/却下の結果
func Decide(approved bool) Status {
	if approved {
		return StatusApproved
	}
	return StatusRejected
}

// Transition: 現在の状態から承認/却下を適用する。WAITING 以外は常にエラー
func Transition(cur Status, approved bool) (Status, error) {
	next := Decide(approved)
	if !cur.CanTransition(next) {
		return cur, apperr.Invalidf("booking status is already %s", cur)
	}
	return next, nil
}

func (s *Status) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*s = Status(v)
	case []byte:
		*s = Status(v)
	default:
		return fmt.Errorf("bookings.Status: unsupported type %T", src)
	}
	if !s.Valid() {
		return fmt.Errorf("bookings.Status: unknown value %q", string(*s))
	}
	return nil
}

func (s Status) Value() (driver.Value, error) { return string(s), nil }
