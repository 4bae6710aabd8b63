package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	testCases := []struct {
		name     string
		in       Filters
		expected Filters
	}{
		{"defaults", Filters{}, Filters{Page: 1, PageSize: 15}},
		{"negative page", Filters{Page: -3, PageSize: 10}, Filters{Page: 1, PageSize: 10}},
		{"too big", Filters{Page: 2, PageSize: 5000}, Filters{Page: 2, PageSize: MaxPageSize}},
		{"untouched", Filters{Page: 4, PageSize: 20}, Filters{Page: 4, PageSize: 20}},
		{"deep page", Filters{Page: 1_000_000, PageSize: 100}, Filters{Page: 101, PageSize: 100}},
		{"overflowing page", Filters{Page: 1 << 62, PageSize: 15}, Filters{Page: 667, PageSize: 15}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.in.Clamp(15, MaxPageSize))
		})
	}
}

func TestOffset(t *testing.T) {
	f := New(3, 15)
	assert.Equal(t, 15, f.Limit())
	assert.Equal(t, 30, f.Offset())
	assert.Equal(t, 0, New(1, 15).Offset())
}

func TestOffsetStaysBounded(t *testing.T) {
	for _, size := range []int{1, 7, 15, 20, MaxPageSize} {
		f := Filters{Page: 1 << 62, PageSize: size}.Clamp(15, MaxPageSize)
		assert.LessOrEqual(t, f.Offset(), MaxOffset)
		assert.Positive(t, f.Offset())
	}
}
