package redisutil

import "path"

// Prefix builds hierarchical Redis keys. It keeps all keys of an application
// under a common namespace, so multiple applications can share an instance.
type Prefix string

// Key joins the prefix with the given elements into a single key.
func (p Prefix) Key(elem ...string) string {
	elem = append([]string{string(p)}, elem...)
	return path.Join(elem...)
}

// Add returns a new Prefix with the given elements appended.
func (p Prefix) Add(elem ...string) Prefix {
	return Prefix(p.Key(elem...))
}

// Keys applies Key to every element of the list.
func (p Prefix) Keys(list []string) []string {
	result := make([]string, len(list))

	for i := 0; i < len(list); i++ {
		result[i] = p.Key(list[i])
	}

	return result
}
