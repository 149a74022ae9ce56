package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// Signature derives a short, fixed-length key from the joined parts. Adapter
// caches key upstream requests by signature so full request URLs, which
// carry the API key as a query parameter, never appear as cache keys.
func Signature(parts ...string) string {
	return SHA256Hex(strings.Join(parts, "\x1f"))[:16]
}
