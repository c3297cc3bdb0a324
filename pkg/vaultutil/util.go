package vaultutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/vault/api"
)

// prettyPrintSecret formats a secret for the debug log. It only reveals the
// data keys, never the values.
func prettyPrintSecret(secret *api.Secret) string {
	if secret == nil {
		return "<nil>"
	}

	keys := []string{}
	for key := range secret.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return fmt.Sprintf("request-id=%s lease-duration=%ds keys=%s",
		secret.RequestID, secret.LeaseDuration, strings.Join(keys, ","))
}
