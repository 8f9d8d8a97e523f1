package bookings

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shareit-backend/internal/platform/apperr"
)

type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = map[State]struct{}{
	StateAll: {}, StateCurrent: {}, StatePast: {}, StateFuture: {}, StateWaiting: {}, StateRejected: {},
}

// ParseState: 大文字小文字は区別しない。空なら ALL
func ParseState(s string) (State, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return StateAll, nil
	}
	st := State(cases.Upper(language.Und).String(raw))
	if _, ok := states[st]; !ok {
		return "", apperr.Invalidf("Unknown state: %s", s)
	}
	return st, nil
}

// Classify: 時間上の区分。end == now はどれにも入らないので空文字
func Classify(b Booking, now time.Time) State {
	switch {
	case b.End.Before(now):
		return StatePast
	case b.Start.After(now):
		return StateFuture
	case now.Before(b.End):
		return StateCurrent
	default:
		return ""
	}
}

// Matches: 一覧の絞り込み条件。SQL 側の条件 (stateClause) と一致させること
func Matches(st State, b Booking, now time.Time) bool {
	switch st {
	case StateAll:
		return true
	case StateCurrent, StatePast, StateFuture:
		return Classify(b, now) == st
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	}
	return false
}

// stateClause: Matches の SQL 版
func stateClause(st State, now time.Time) (string, []any) {
	switch st {
	case StateCurrent:
		return " AND b.start_date <= ? AND b.end_date > ?", []any{now, now}
	case StatePast:
		return " AND b.end_date < ?", []any{now}
	case StateFuture:
		return " AND b.start_date > ?", []any{now}
	case StateWaiting:
		return " AND b.status = ?", []any{StatusWaiting}
	case StateRejected:
		return " AND b.status = ?", []any{StatusRejected}
	}
	return "", nil
}
