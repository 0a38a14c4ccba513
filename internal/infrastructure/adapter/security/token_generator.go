package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// tokenBytes is the raw entropy per token: 32 bytes = 256 bits
const tokenBytes = 32

// RandomTokenGenerator implements TokenGenerator using crypto/rand
type RandomTokenGenerator struct{}

// NewRandomTokenGenerator creates a new RandomTokenGenerator
func NewRandomTokenGenerator() core.TokenGenerator {
	return &RandomTokenGenerator{}
}

// Generate produces a hex-encoded 256-bit random token
func (g *RandomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
