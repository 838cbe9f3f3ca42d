package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// New generates a uniformly random 6-digit numeric code as text, leading
// zeros preserved ("000000" through "999999").
func New() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
