package secrets

import (
	"crypto/sha256"
	"crypto/subtle"
)

// Equal compares two secrets in constant time. Both operands are hashed
// first so the comparison length is fixed and operand lengths never affect
// timing.
func Equal(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}
