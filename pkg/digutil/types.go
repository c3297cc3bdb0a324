package digutil

import "go.uber.org/dig"

// Optional wraps a dependency that may be absent from the container.
// Constructors take it as a parameter object and check Value for nil:
//
//	func LoadPlan(location string, vault digutil.Optional[vaultutil.Manager]) (*Plan, error) {
//	    if vault.Value != nil {
//	        // use the vault-backed credentials
//	    }
//	    ...
//	}
type Optional[T any] struct {
	dig.In
	Value *T `optional:"true"`
}

// ProvideValue registers an already constructed value with the container.
// Plain c.Provide only accepts constructor functions.
func ProvideValue[T any](c *dig.Container, v T) error {
	return c.Provide(func() T {
		return v
	})
}
