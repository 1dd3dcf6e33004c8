// Package hash computes the content address of raw bytes. The digest is
// used both for duplicate detection and as the content of the detached
// hash artifact.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the lower-case hex SHA-256 digest of content. Pure function:
// identical bytes always produce the identical digest.
func Sum(content []byte) string {
	digest := sha256.Sum256(content)
	return hex.EncodeToString(digest[:])
}
