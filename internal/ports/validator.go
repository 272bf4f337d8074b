package ports

import "github.com/bft-labs/defendcode/internal/domain"

// Validator decides whether a raw string satisfies a rule.
//
// A rule violation is reported through the result with a nil error. The
// error is reserved for underlying I/O faults and is always a
// *domain.IOError; a malformed raw value never produces one.
type Validator interface {
	Validate(raw string) (domain.ValidationResult, error)
}

// ValidatorFunc adapts an ordinary function to the Validator interface.
type ValidatorFunc func(raw string) (domain.ValidationResult, error)

// Validate calls f(raw).
func (f ValidatorFunc) Validate(raw string) (domain.ValidationResult, error) {
	return f(raw)
}
