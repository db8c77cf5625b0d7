package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 30, ParseIntDefault("", 30))
	assert.Equal(t, 7, ParseIntDefault("7", 30))
	assert.Equal(t, 30, ParseIntDefault("seven", 30))
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		page, size int
		offset     int
		limit      int
	}{
		{"defaults", 1, 0, 0, DefaultPageSize},
		{"second page", 2, 10, 10, 10},
		{"page below one", 0, 10, 0, 10},
		{"negative size", 1, -5, 0, DefaultPageSize},
		{"size above max clamps", 1, 500, 0, MaxPageSize},
		{"size at max kept", 3, MaxPageSize, 200, MaxPageSize},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			offset, limit := Calculate(tc.page, tc.size)
			assert.Equal(t, tc.offset, offset)
			assert.Equal(t, tc.limit, limit)
		})
	}
}
