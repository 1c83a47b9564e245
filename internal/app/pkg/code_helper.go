package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// RedemptionCodeBytes is the entropy of a redemption code (128 bits).
const RedemptionCodeBytes = 16

// RedemptionCodeLength is the rendered length of a redemption code.
const RedemptionCodeLength = RedemptionCodeBytes * 2

// GenerateRedemptionCode returns a fixed length uppercase hex token read from
// the system CSPRNG. An error means the entropy source failed.
func GenerateRedemptionCode() (string, error) {
	b := make([]byte, RedemptionCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// NormalizeRedemptionCode canonicalizes operator input before lookup.
func NormalizeRedemptionCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
