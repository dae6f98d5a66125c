package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/gendocs/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash digests of generated and published files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Sum returns the hex digest of content.
func (h *Hasher) Sum(content []byte) string {
	return format(xxhash.Sum64(content))
}

func format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
