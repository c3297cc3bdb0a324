package typeutil

import (
	"context"
	"fmt"
)

// FromContext retrieves a typed pointer from the context. It returns nil if
// the key is missing or holds a different type.
func FromContext[T any](ctx context.Context, key any) *T {
	typed, ok := ctx.Value(key).(*T)
	if !ok {
		return nil
	}

	return typed
}

type singletonKey string

func getSingletonKey[T any]() singletonKey {
	var dummy *T
	return singletonKey(fmt.Sprintf("%T", dummy))
}

// FromContextSingleton retrieves the single value of type T from the context.
// The key is derived from the type itself, so at most one value per type can
// be stored this way.
func FromContextSingleton[T any](ctx context.Context) *T {
	return FromContext[T](ctx, getSingletonKey[T]())
}

// ContextWithValueSingleton stores the value under a key derived from its
// type. See FromContextSingleton.
func ContextWithValueSingleton[T any](ctx context.Context, value *T) context.Context {
	return context.WithValue(ctx, getSingletonKey[T](), value)
}
