package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// SaltSource produces salts for new credentials.
type SaltSource interface {
	NewSalt() (string, error)
}

// NumericSalt draws a decimal salt uniformly from [Min, Max].
// The default range has under 14 bits of entropy.
type NumericSalt struct {
	Min int64
	Max int64
}

// DefaultSalt returns a four-digit salt source.
func DefaultSalt() NumericSalt {
	return NumericSalt{Min: 1000, Max: 9999}
}

// NewSalt implements SaltSource.
func (s NumericSalt) NewSalt() (string, error) {
	if s.Max < s.Min {
		return "", fmt.Errorf("salt range [%d, %d] is empty", s.Min, s.Max)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(s.Max-s.Min+1))
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return strconv.FormatInt(s.Min+n.Int64(), 10), nil
}
