package redisutil

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisGetter is the read-side subset of [redis.UniversalClient] that the
// JSON helpers need.
type RedisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisSetter is the write-side subset of [redis.UniversalClient] that the
// JSON helpers need.
type RedisSetter interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisGetSetter combines RedisGetter and RedisSetter for helpers that read
// and write the same key.
type RedisGetSetter interface {
	RedisGetter
	RedisSetter
}

// JSONGet reads the given key and unmarshals it into T. It transparently
// decompresses payloads that were written with [GzipJSONSet].
func JSONGet[T any](ctx context.Context, c RedisGetter, key string) (*T, error) {
	payload, err := c.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	payload, err = gunzip(payload)
	if err != nil {
		return nil, err
	}

	result := new(T)

	err = json.Unmarshal(payload, result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// JSONSet marshals the value and stores it under the given key.
func JSONSet(ctx context.Context, c RedisSetter, key string, v any, expiration time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, string(payload), expiration).Err()
}

// GzipJSONSet marshals the value and stores it gzip-compressed under the
// given key. Use [JSONGet] for reading it back.
func GzipJSONSet(ctx context.Context, c RedisSetter, key string, v any, expiration time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	compressed, err := gzipBytes(payload)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, compressed, expiration).Err()
}

// GzipJSONGetSet stores the value like [GzipJSONSet], but only when it
// differs from the value that is already present. It reports whether the key
// got written. Keys written this way do not expire.
func GzipJSONGetSet(ctx context.Context, c RedisGetSetter, key string, v any) (bool, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return false, err
	}

	previous, err := c.Get(ctx, key).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}

	if err == nil {
		previous, err = gunzip(previous)
		if err != nil {
			return false, err
		}

		if bytes.Equal(previous, payload) {
			return false, nil
		}
	}

	compressed, err := gzipBytes(payload)
	if err != nil {
		return false, err
	}

	return true, c.Set(ctx, key, compressed, 0).Err()
}

func gzipBytes(payload []byte) ([]byte, error) {
	buf := new(bytes.Buffer)

	w := gzip.NewWriter(buf)

	_, err := w.Write(payload)
	if err != nil {
		return nil, err
	}

	err = w.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// gunzip decompresses the payload when it carries the gzip magic bytes and
// returns it unchanged otherwise, so plain JSON values keep working.
func gunzip(payload []byte) ([]byte, error) {
	if len(payload) < 2 || payload[0] != 0x1f || payload[1] != 0x8b {
		return payload, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
