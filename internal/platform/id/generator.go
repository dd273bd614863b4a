// Package id generates the opaque public identifiers stored alongside
// database rows.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// Generator creates opaque IDs suitable for external references. Tests
// substitute deterministic implementations.
type Generator interface {
	NewID() (string, error)
}

const randomIDBytes = 16

// RandomGenerator produces 32-char hex IDs from crypto/rand.
type RandomGenerator struct {
	source io.Reader
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{source: rand.Reader}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, randomIDBytes)
	if _, err := io.ReadFull(g.source, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
