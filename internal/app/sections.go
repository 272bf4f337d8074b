package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bft-labs/defendcode/internal/domain"
	"github.com/bft-labs/defendcode/internal/prompt"
	"github.com/bft-labs/defendcode/internal/rules"
)

func (s *Session) collectName(ctx context.Context, which string) (string, error) {
	fmt.Fprintf(s.out, "\nPlease enter your %s name:\n", which)
	fmt.Fprintln(s.out, "Below are the rules to which you must follow when inputting")
	fmt.Fprintf(s.out, "- Maximum length: %d characters\n", rules.MaxNameLength)
	fmt.Fprintln(s.out, "- Must contain only letters, spaces, hyphens, and apostrophes")
	fmt.Fprintln(s.out, "- Must start and end with a letter")
	fmt.Fprintln(s.out)

	return s.prompter.WithLabel(which+" name").Run(ctx, "Input here > ", rules.NameRule{})
}

func (s *Session) collectPair(ctx context.Context) (domain.NumberPair, error) {
	fmt.Fprintf(s.out, "\nPlease enter two integers between %d and %d.\n", domain.MinInt32, domain.MaxInt32)

	first, err := s.collectInt(ctx, "first")
	if err != nil {
		return domain.NumberPair{}, err
	}
	second, err := s.collectInt(ctx, "second")
	if err != nil {
		return domain.NumberPair{}, err
	}

	fmt.Fprintf(s.out, "You entered: %d and %d\n", first, second)
	return domain.NumberPair{First: first, Second: second}, nil
}

func (s *Session) collectInt(ctx context.Context, ordinal string) (int32, error) {
	raw, err := s.prompter.WithLabel(ordinal+" integer").
		Run(ctx, fmt.Sprintf("Enter %s integer: ", ordinal), rules.IntegerRangeRule{})
	if err != nil {
		return 0, err
	}
	return rules.ParseInt32(raw)
}

// FileSelector asks for a file name until its rule accepts one.
type FileSelector struct {
	prompter *prompt.Prompter
	out      io.Writer
	rule     *rules.FileRule
}

// NewFileSelector creates a selector for rule's role.
func NewFileSelector(p *prompt.Prompter, out io.Writer, rule *rules.FileRule) *FileSelector {
	return &FileSelector{
		prompter: p.WithLabel(rule.Role.String() + " file"),
		out:      out,
		rule:     rule,
	}
}

// Select prints the requirements for the role and returns the accepted name.
func (f *FileSelector) Select(ctx context.Context) (domain.FileSelection, error) {
	role := f.rule.Role
	exts := strings.Join(f.rule.Extensions, ", ")

	fmt.Fprintf(f.out, "\n=== %s FILE ===\n", strings.ToUpper(role.String()))
	fmt.Fprintf(f.out, "Please enter the name of an %s file.\n", role)
	fmt.Fprintln(f.out, "Requirements:")
	fmt.Fprintf(f.out, "- File must have one of these extensions: %s\n", exts)
	fmt.Fprintln(f.out, "- File must be in the current directory (no / or \\)")
	if role == domain.RoleInput {
		fmt.Fprintln(f.out, "- File must exist and be readable as text")
		if f.rule.MaxBytes > 0 {
			fmt.Fprintf(f.out, "- File must be at most %d bytes\n", f.rule.MaxBytes)
		}
	} else {
		fmt.Fprintln(f.out, "- File must be writable and differ from the input file")
		fmt.Fprintln(f.out, "- If the file already exists, it will be overwritten")
	}

	name, err := f.prompter.Run(ctx, "Enter filename: ", f.rule)
	if err != nil {
		return domain.FileSelection{}, err
	}

	fmt.Fprintf(f.out, "Valid %s file selected: %s\n", role, name)
	return domain.FileSelection{Name: name, Role: role}, nil
}
