package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a namespaced cache key: the namespace stays readable
// ("transform", "trace") while the components collapse into a SHA-256
// digest. Option structs marshal with sorted map keys, so the digest is
// stable for equal inputs.
func hashKey(namespace string, components ...any) string {
	payload, _ := json.Marshal(components)
	sum := sha256.Sum256(payload)
	return namespace + ":" + hex.EncodeToString(sum[:])
}

// Hash fingerprints raw bytes with SHA-256. The server uses it to key
// responses by model content: two submissions of the same model JSON
// share a fingerprint regardless of request identity.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
