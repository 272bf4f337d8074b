package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bft-labs/defendcode/internal/domain"
)

// Password length bounds, in characters.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 50
)

// PasswordSpecials is the set of accepted special characters.
const PasswordSpecials = `!@#$%^&*()_-+=<>?/[]{}`

// Each class must be present at least once. RE2 has no lookahead, so the
// composed pattern is the conjunction of the length window and these.
var passwordClasses = []struct {
	pattern *regexp.Regexp
	missing string
}{
	{regexp.MustCompile(`[A-Z]`), "an uppercase letter (A-Z)"},
	{regexp.MustCompile(`[a-z]`), "a lowercase letter (a-z)"},
	{regexp.MustCompile(`[0-9]`), "a number (0-9)"},
	{regexp.MustCompile(`[!@#$%^&*()_\-+=<>?/\[\]{}]`), "a special character (" + PasswordSpecials + ")"},
}

// PasswordRule validates password syntax.
type PasswordRule struct{}

// Validate implements ports.Validator.
func (PasswordRule) Validate(raw string) (domain.ValidationResult, error) {
	var problems []string

	if n := utf8.RuneCountInString(raw); n < MinPasswordLength || n > MaxPasswordLength {
		problems = append(problems, fmt.Sprintf("be %d-%d characters long", MinPasswordLength, MaxPasswordLength))
	}
	for _, c := range passwordClasses {
		if !c.pattern.MatchString(raw) {
			problems = append(problems, "contain "+c.missing)
		}
	}

	if len(problems) > 0 {
		return domain.Reject("invalid password: it must " + strings.Join(problems, ", ")), nil
	}
	return domain.Accept(), nil
}

// PasswordRequirements describes the rule for the operator.
func PasswordRequirements() string {
	return fmt.Sprintf("Password must be %d-%d characters and contain:\n"+
		"- At least one uppercase letter (A-Z)\n"+
		"- At least one lowercase letter (a-z)\n"+
		"- At least one number (0-9)\n"+
		"- At least one special character (%s)", MinPasswordLength, MaxPasswordLength, PasswordSpecials)
}
