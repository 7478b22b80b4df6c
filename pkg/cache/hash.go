package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey joins a namespace ("fragment" or "figure") with the SHA-256 of
// the JSON-encoded parts. Sizes are pre-rounded by the caller so equal
// requests always encode the same way.
func hashKey(namespace string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return namespace + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. Leaf and tree fingerprints and
// file cache paths are built from it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
