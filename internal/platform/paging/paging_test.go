package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit-backend/internal/platform/apperr"
)

func TestFromSize(t *testing.T) {
	cases := []struct {
		from, size int
		want       Page
	}{
		{0, 10, Page{Limit: 10, Offset: 0}},
		{10, 10, Page{Limit: 10, Offset: 10}},
		{3, 2, Page{Limit: 2, Offset: 2}},
		{9, 10, Page{Limit: 10, Offset: 0}},
	}
	for _, tc := range cases {
		got, err := FromSize(tc.from, tc.size)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "from=%d size=%d", tc.from, tc.size)
	}
}

func TestFromSize_Invalid(t *testing.T) {
	_, err := FromSize(-1, 10)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
	_, err = FromSize(0, 0)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}
