package util

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a stable, non-reversible identifier for a secret token
// so it can be stored or logged without exposing the token itself.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ShortFingerprint is the first 12 hex characters, enough to correlate log lines.
func ShortFingerprint(token string) string {
	fp := Fingerprint(token)
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
