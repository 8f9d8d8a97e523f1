package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit-backend/internal/platform/apperr"
)

func TestParseState(t *testing.T) {
	for in, want := range map[string]State{
		"":         StateAll,
		"all":      StateAll,
		"Current":  StateCurrent,
		"past":     StatePast,
		"FUTURE":   StateFuture,
		"waiting":  StateWaiting,
		"rejected": StateRejected,
	} {
		got, err := ParseState(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseState("UNSUPPORTED_STATUS")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
	assert.Contains(t, err.Error(), "Unknown state: UNSUPPORTED_STATUS")
}

func TestClassify_Boundaries(t *testing.T) {
	now := t0
	b := func(start, end time.Time) Booking { return Booking{Start: start, End: end} }

	assert.Equal(t, StateCurrent, Classify(b(now, now.Add(time.Hour)), now))
	assert.Equal(t, StatePast, Classify(b(now.Add(-2*time.Hour), now.Add(-time.Nanosecond)), now))
	assert.Equal(t, StateFuture, Classify(b(now.Add(time.Nanosecond), now.Add(time.Hour)), now))
	assert.Equal(t, State(""), Classify(b(now.Add(-time.Hour), now), now))
}

// CURRENT / PAST / FUTURE は互いに素で、ALL は全件
func TestMatches_Partition(t *testing.T) {
	now := t0
	var all []Booking
	for i := -5; i <= 5; i++ {
		for d := 1; d <= 3; d++ {
			start := now.Add(time.Duration(i) * time.Hour)
			all = append(all, Booking{ID: int64(len(all) + 1), Start: start, End: start.Add(time.Duration(d) * time.Hour)})
		}
	}
	for _, bk := range all {
		assert.True(t, Matches(StateAll, bk, now))
		n := 0
		for _, st := range []State{StateCurrent, StatePast, StateFuture} {
			if Matches(st, bk, now) {
				n++
			}
		}
		if bk.End.Equal(now) {
			assert.Equal(t, 0, n, "booking %d ends now", bk.ID)
		} else {
			assert.Equal(t, 1, n, "booking %d", bk.ID)
		}
	}
}

func TestMatches_Status(t *testing.T) {
	w := Booking{Status: StatusWaiting, Start: t0, End: t0.Add(time.Hour)}
	r := Booking{Status: StatusRejected, Start: t0, End: t0.Add(time.Hour)}
	assert.True(t, Matches(StateWaiting, w, t0))
	assert.False(t, Matches(StateWaiting, r, t0))
	assert.True(t, Matches(StateRejected, r, t0))
}
