// Package determinism provides primitives for guaranteeing deterministic output.
// Equal inputs must produce equal IDs and equal iteration order.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// StableID is a hash-based identifier that's deterministic
type StableID string

// IDGenerator generates stable, name-based (SHA-1) UUIDs within a namespace
type IDGenerator struct {
	namespace uuid.UUID
}

// NewIDGenerator creates an ID generator with a namespace
func NewIDGenerator(namespace string) *IDGenerator {
	return &IDGenerator{namespace: uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace))}
}

// Generate creates a stable UUID from inputs
func (g *IDGenerator) Generate(parts ...string) uuid.UUID {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part)
		b.WriteByte(0) // Separator
	}
	return uuid.NewSHA1(g.namespace, []byte(b.String()))
}

// Short returns a prefixed, upper-case ID made of the first n hex digits of the UUID
func (g *IDGenerator) Short(prefix string, n int, parts ...string) StableID {
	hexID := strings.ReplaceAll(g.Generate(parts...).String(), "-", "")
	if n > len(hexID) {
		n = len(hexID)
	}
	return StableID(prefix + strings.ToUpper(hexID[:n]))
}

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// HashJSON hashes the canonical JSON encoding of v. Struct fields encode in
// declaration order and map keys sorted, so equal values hash equally.
func HashJSON(v interface{}) (ContentHash, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return ContentHash{}, err
	}
	return ComputeHash(data), nil
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}
