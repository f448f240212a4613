package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a prefixed synthetic id, e.g. "bk-3f9a1c07".
// The prefix tells operators at a glance which table an id belongs to.
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "-" + raw[:8]
}

// NewSessionToken generates an opaque bearer token. Two UUIDs give 256 bits
// of randomness, enough that tokens cannot be guessed or enumerated.
func NewSessionToken() string {
	return strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", "")
}
