package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bft-labs/defendcode/internal/domain"
)

var errOutOfRange = fmt.Errorf("number must be between %d and %d", domain.MinInt32, domain.MaxInt32)

// ParseInt32 parses a base-10 integer literal with an optional sign,
// ignoring surrounding blanks, and checks it fits in 32 bits.
func ParseInt32(raw string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errOutOfRange
		}
		return 0, errors.New("please enter a valid integer")
	}
	if !domain.InInt32Range(n) {
		return 0, errOutOfRange
	}
	return int32(n), nil
}

// IntegerRangeRule accepts any integer literal in the signed 32-bit range.
type IntegerRangeRule struct{}

// Validate implements ports.Validator.
func (IntegerRangeRule) Validate(raw string) (domain.ValidationResult, error) {
	if _, err := ParseInt32(raw); err != nil {
		return domain.Reject(err.Error()), nil
	}
	return domain.Accept(), nil
}
