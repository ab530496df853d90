package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	digitSpan  = 900000
	digitFloor = 100000
)

// Generator mints public team identifiers of the form PREFIX-NNNNNN.
type Generator interface {
	NewTeamID() (string, error)
}

type RandomGenerator struct {
	prefix string
}

func NewRandomGenerator(prefix string) *RandomGenerator {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "TR"
	}
	return &RandomGenerator{prefix: prefix}
}

// NewTeamID returns the prefix followed by a uniformly random 6-digit number.
func (g *RandomGenerator) NewTeamID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(digitSpan))
	if err != nil {
		return "", fmt.Errorf("read random number: %w", err)
	}

	return fmt.Sprintf("%s-%d", g.prefix, n.Int64()+digitFloor), nil
}
