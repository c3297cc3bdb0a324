package typeutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	toJSON := func(t *testing.T, set Set[int]) string {
		data, err := json.Marshal(set)
		assert.NoError(t, err)
		return string(data)
	}

	t.Run("ZeroValue", func(t *testing.T) {
		var set Set[int]
		set.Add(503)
		set.Add(429)
		set.Add(429)
		assert.Equal(t, `[429,503]`, toJSON(t, set))
		assert.Equal(t, 2, set.Len())
	})

	t.Run("Variadic", func(t *testing.T) {
		set := NewSet(503, 429, 409)
		assert.Equal(t, []int{409, 429, 503}, set.ToList())
	})

	t.Run("Contains", func(t *testing.T) {
		set := NewSet(429, 503)
		assert.True(t, set.Contains(429))
		assert.False(t, set.Contains(404))
	})

	t.Run("NilReceiver", func(t *testing.T) {
		var set *Set[int]
		assert.False(t, set.Contains(429))
		assert.Equal(t, 0, set.Len())
		assert.Nil(t, set.ToList())
	})

	t.Run("Remove", func(t *testing.T) {
		set := NewSet(429, 503)
		set.Remove(429)
		set.Remove(404)
		assert.Equal(t, []int{503}, set.ToList())
	})

	t.Run("JSONRoundTrip", func(t *testing.T) {
		var set Set[int]
		err := json.Unmarshal([]byte(`[503,409,429]`), &set)
		require.NoError(t, err)
		assert.Equal(t, `[409,429,503]`, toJSON(t, set))
	})
}

func TestSetUnion(t *testing.T) {
	cases := []struct {
		Name string
		A, B *Set[string]
		Want *Set[string]
	}{
		{
			Name: "Simple",
			A:    NewSet("a", "b", "c"),
			B:    NewSet("c", "d", "e"),
			Want: NewSet("a", "b", "c", "d", "e"),
		},
		{
			Name: "NilB",
			A:    NewSet("a", "b", "c"),
			B:    nil,
			Want: NewSet("a", "b", "c"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			have := SetUnion(tc.A, tc.B)
			require.Equal(t, tc.Want.ToList(), have.ToList())
		})
	}
}

func TestSetIntersect(t *testing.T) {
	cases := []struct {
		Name string
		A, B *Set[string]
		Want *Set[string]
	}{
		{
			Name: "Simple",
			A:    NewSet("a", "b", "c", "d"),
			B:    NewSet("c", "d", "e"),
			Want: NewSet("c", "d"),
		},
		{
			Name: "NilB",
			A:    NewSet("a", "b", "c"),
			B:    nil,
			Want: NewSet[string](),
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			have := SetIntersect(tc.A, tc.B)
			require.Equal(t, tc.Want.ToList(), have.ToList())
		})
	}
}
