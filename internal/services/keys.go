package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Namespace for deterministic idempotency keys. Fixed so that the same
// (product, target, attempt) triple always derives the same key.
var idempotencyNamespace = uuid.MustParse("9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d")

// DeriveIdempotencyKey derives a stable idempotency key from the given
// parts. The key is identical for transport-level retries of one logical
// attempt (same parts) and necessarily different for an independently
// initiated attempt, which carries a fresh attempt ID in its parts.
func DeriveIdempotencyKey(parts ...string) string {
	return uuid.NewSHA1(idempotencyNamespace, []byte(strings.Join(parts, ":"))).String()
}

// ValidateIdempotencyKey enforces the API contract for keys: an opaque
// string of 8 to 128 characters.
func ValidateIdempotencyKey(key string) error {
	if len(key) < 8 || len(key) > 128 {
		return fmt.Errorf("idempotency key must be 8-128 characters, got %d", len(key))
	}
	return nil
}
