package dsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitSlice(t *testing.T) {
	cases := []struct {
		Name    string
		In      []string
		Limit   int
		Want    []string
		Skipped int
	}{
		{
			Name:    "BelowLimit",
			In:      []string{"a", "b"},
			Limit:   3,
			Want:    []string{"a", "b"},
			Skipped: 0,
		},
		{
			Name:    "AtLimit",
			In:      []string{"a", "b", "c"},
			Limit:   3,
			Want:    []string{"a", "b", "c"},
			Skipped: 0,
		},
		{
			Name:    "AboveLimit",
			In:      []string{"a", "b", "c", "d", "e"},
			Limit:   3,
			Want:    []string{"a", "b", "c"},
			Skipped: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			have, skipped := LimitSlice(tc.In, tc.Limit)
			assert.Equal(t, tc.Want, have)
			assert.Equal(t, tc.Skipped, skipped)
		})
	}
}

func TestFilterSlice(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6}

	have := FilterSlice(in, func(v int) bool {
		return v%2 == 0
	})

	assert.Equal(t, []int{2, 4, 6}, have)
}
