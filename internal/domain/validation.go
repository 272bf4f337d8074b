package domain

// ValidationResult is the verdict of a validator for one raw value.
// It is consumed immediately by the prompt loop and never persisted.
type ValidationResult struct {
	Accepted bool

	// Reason explains a rejection. It is empty when Accepted is true.
	Reason string
}

// Accept returns an accepting result.
func Accept() ValidationResult {
	return ValidationResult{Accepted: true}
}

// Reject returns a rejecting result with the given reason.
func Reject(reason string) ValidationResult {
	return ValidationResult{Reason: reason}
}
