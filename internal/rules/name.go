package rules

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/bft-labs/defendcode/internal/domain"
)

// MaxNameLength is the longest accepted name, in characters.
const MaxNameLength = 50

// A name starts and ends with a letter; inside, letters, apostrophes,
// hyphens and spaces are allowed. A single letter is a valid name.
var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z' -]*[a-zA-Z]$|^[a-zA-Z]$`)

// NameRule validates a first or last name.
type NameRule struct{}

// Validate implements ports.Validator.
func (NameRule) Validate(raw string) (domain.ValidationResult, error) {
	switch {
	case raw == "":
		return domain.Reject("name cannot be empty"), nil
	case utf8.RuneCountInString(raw) > MaxNameLength:
		return domain.Reject(fmt.Sprintf("name must be %d characters or less", MaxNameLength)), nil
	case !namePattern.MatchString(raw):
		return domain.Reject("invalid name format: use only letters, spaces, hyphens and apostrophes, starting and ending with a letter"), nil
	}
	return domain.Accept(), nil
}
