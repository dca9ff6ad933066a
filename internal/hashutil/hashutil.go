package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes returns the hex-encoded SHA256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
