package vaultutil

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeSecret reads a KV secret and decodes its data into T. Fields are
// matched via the `vault` struct tag and every tagged field must be present
// in the secret.
func DecodeSecret[T any](manager *Manager, path string) (T, error) {
	var result T

	generic, err := manager.GetClient().Logical().Read(path)
	if err != nil {
		return result, fmt.Errorf("read generic data: %w", err)
	}

	if generic == nil {
		return result, fmt.Errorf("no secret at path %q", path)
	}

	config := &mapstructure.DecoderConfig{
		Result:     &result,
		TagName:    "vault",
		ErrorUnset: true,
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return result, err
	}

	err = decoder.Decode(generic.Data["data"])
	if err != nil {
		return result, err
	}

	return result, err
}
