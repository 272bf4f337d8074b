package rules

import (
	"strings"
	"testing"
)

func TestPasswordRule_Validate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "minimal valid", raw: "Abcdef1!", want: true},
		{name: "all lowercase", raw: "abcdefgh", want: false},
		{name: "missing special", raw: "Abcdefg1", want: false},
		{name: "missing digit", raw: "Abcdefg!", want: false},
		{name: "missing upper", raw: "abcdef1!", want: false},
		{name: "missing lower", raw: "ABCDEF1!", want: false},
		{name: "too short", raw: "Ab1!", want: false},
		{name: "max length", raw: "Aa1!" + strings.Repeat("x", MaxPasswordLength-4), want: true},
		{name: "too long with every class", raw: "Aa1!" + strings.Repeat("x", 56), want: false},
		{name: "brackets count as special", raw: "Abcdef1[", want: true},
		{name: "braces count as special", raw: "Abcdef1}", want: true},
		{name: "hyphen counts as special", raw: "Abcdef1-", want: true},
		{name: "tilde is not special", raw: "Abcdef1~", want: false},
		{name: "empty", raw: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := PasswordRule{}.Validate(tt.raw)
			if err != nil {
				t.Fatalf("Validate error = %v", err)
			}
			if res.Accepted != tt.want {
				t.Errorf("Validate(%q).Accepted = %v, want %v (reason %q)", tt.raw, res.Accepted, tt.want, res.Reason)
			}
		})
	}
}

func TestPasswordRule_ReasonListsEveryProblem(t *testing.T) {
	res, _ := PasswordRule{}.Validate("abc")
	for _, want := range []string{"8-50 characters", "uppercase", "number", "special"} {
		if !strings.Contains(res.Reason, want) {
			t.Errorf("reason %q missing %q", res.Reason, want)
		}
	}
	if strings.Contains(res.Reason, "lowercase") {
		t.Errorf("reason %q should not mention lowercase", res.Reason)
	}
}

func TestPasswordRequirements(t *testing.T) {
	req := PasswordRequirements()
	if !strings.Contains(req, "8-50") || !strings.Contains(req, PasswordSpecials) {
		t.Errorf("requirements text = %q", req)
	}
}
