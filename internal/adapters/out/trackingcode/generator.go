// Package trackingcode issues the fulfillment codes handed to customers.
package trackingcode

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultPrefix is put in front of every generated code.
const DefaultPrefix = "FUL-"

// RandomGenerator renders a version 4 UUID (122 random bits) as upper-case hex.
// Uniqueness across orders is enforced by the orders table; a collision makes the
// caller retry.
type RandomGenerator struct {
	prefix string
}

func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: strings.TrimSpace(prefix)}
}

func (g *RandomGenerator) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate tracking code: %w", err)
	}
	return g.prefix + strings.ToUpper(hex.EncodeToString(id[:])), nil
}
