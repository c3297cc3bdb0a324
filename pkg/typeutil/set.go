package typeutil

import (
	"encoding/json"
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

// Set is a map-backed set. It is meant for small lookup tables like status
// code sets, not for large data.
//
// The zero value is an empty set that is ready for use.
type Set[T constraints.Ordered] struct {
	data map[T]struct{}
}

// NewSet initializes a new Set containing the given values.
func NewSet[T constraints.Ordered](values ...T) *Set[T] {
	s := new(Set[T])
	s.Add(values...)
	return s
}

// Add puts the given values into the set. Values that are already present
// stay as they are.
func (s *Set[T]) Add(values ...T) {
	if s.data == nil {
		s.data = make(map[T]struct{}, len(values))
	}

	for _, v := range values {
		s.data[v] = struct{}{}
	}
}

// AddSet puts every value of other into the set.
func (s *Set[T]) AddSet(other *Set[T]) {
	if other == nil {
		return
	}

	for v := range other.data {
		s.Add(v)
	}
}

// Contains reports whether the given value is part of the set. It is safe to
// call on a nil set, which never contains anything.
func (s *Set[T]) Contains(value T) bool {
	if s == nil {
		return false
	}

	_, found := s.data[value]
	return found
}

// Remove deletes the given value from the set, if present.
func (s *Set[T]) Remove(value T) {
	if s == nil {
		return
	}

	delete(s.data, value)
}

// Len returns the number of values in the set.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}

	return len(s.data)
}

// ToList returns the values of the set as a sorted slice. The result is a
// copy and does not alias the set.
func (s *Set[T]) ToList() []T {
	if s == nil || len(s.data) == 0 {
		return nil
	}

	list := make([]T, 0, len(s.data))
	for v := range s.data {
		list = append(list, v)
	}

	slices.Sort(list)
	return list
}

// MarshalJSON encodes the set as a sorted JSON list.
func (s Set[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToList())
}

// UnmarshalJSON decodes a JSON list into the set.
func (s *Set[T]) UnmarshalJSON(data []byte) error {
	list := []T{}

	err := json.Unmarshal(data, &list)
	if err != nil {
		return fmt.Errorf("unmarshal set: %w", err)
	}

	s.Add(list...)
	return nil
}

// SetUnion returns a new set containing the values of all given sets. Nil
// sets are skipped.
func SetUnion[T constraints.Ordered](sets ...*Set[T]) *Set[T] {
	result := new(Set[T])

	for _, s := range sets {
		result.AddSet(s)
	}

	return result
}

// SetIntersect returns a new set containing the values that are present in
// all given sets. A nil set counts as empty, so the result is empty as well.
func SetIntersect[T constraints.Ordered](sets ...*Set[T]) *Set[T] {
	result := new(Set[T])

	if len(sets) == 0 || sets[0] == nil {
		return result
	}

	for v := range sets[0].data {
		inAll := true

		for _, other := range sets[1:] {
			if !other.Contains(v) {
				inAll = false
				break
			}
		}

		if inAll {
			result.Add(v)
		}
	}

	return result
}
