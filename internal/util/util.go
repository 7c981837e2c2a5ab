package util

import (
	"crypto/sha1"
	"encoding/hex"
)

// ContentHash returns a stable hex digest of a string, used as an ETag for
// rendered pages and the connector script.
func ContentHash(str *string) string {
	hasher := sha1.New()
	hasher.Write([]byte(*str))

	return hex.EncodeToString(hasher.Sum(nil))
}
