package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// digestKey returns "<kind>:<sha256 hex>" over parts. Each part is written
// followed by a NUL byte so ("ab", "c") and ("a", "bc") key differently.
func digestKey(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. Schema fingerprints and file cache
// names are built from it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
