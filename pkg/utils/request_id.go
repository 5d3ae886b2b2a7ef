package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateRequestID creates a short, readable idempotency key for an order.
// Format: {category}-k{kingdomID}-{8charHexUUID}
//
// Example:
//   - Input: category="settle", kingdomID=7
//   - Output: "settle-k7-a3f8e2b1"
//
// The suffix keeps keys unique across retries from different terminals while
// the prefix makes them easy to find in order logs and the commit journal.
func GenerateRequestID(category string, kingdomID int) string {
	return fmt.Sprintf("%s-k%d-%s", normalizeCategory(category), kingdomID, generateShortUUID())
}

// normalizeCategory lowercases the category and replaces anything that is
// not a letter, digit or underscore, so the key stays a single token
//   - "Settle" -> "settle"
//   - "build missiles" -> "build_missiles"
//   - "" -> "order"
func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return "order"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, category)
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
