package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewSecret returns a random 32 character opaque token.
func NewSecret() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
