package rules

import (
	"strconv"
	"testing"

	"github.com/bft-labs/defendcode/internal/domain"
)

func TestIntegerRangeRule_Validate(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"0", true},
		{"42", true},
		{"-17", true},
		{"+5", true},
		{" 12 ", true},
		{"2147483647", true},
		{"-2147483648", true},
		{"2147483648", false},
		{"-2147483649", false},
		{"99999999999999999999999", false},
		{"", false},
		{"abc", false},
		{"1.5", false},
		{"0x10", false},
		{"1 2", false},
	}

	for _, tt := range tests {
		res, err := IntegerRangeRule{}.Validate(tt.raw)
		if err != nil {
			t.Fatalf("Validate(%q) error = %v", tt.raw, err)
		}
		if res.Accepted != tt.want {
			t.Errorf("Validate(%q).Accepted = %v, want %v (reason %q)", tt.raw, res.Accepted, tt.want, res.Reason)
		}
	}
}

func TestIntegerRangeRule_RangeBoundaries(t *testing.T) {
	samples := []int64{
		domain.MinInt32, domain.MinInt32 + 1, -65536, -1, 0, 1, 65536, domain.MaxInt32 - 1, domain.MaxInt32,
	}
	for _, n := range samples {
		if res, _ := (IntegerRangeRule{}).Validate(strconv.FormatInt(n, 10)); !res.Accepted {
			t.Errorf("in-range %d rejected: %s", n, res.Reason)
		}
	}
	for _, n := range []int64{domain.MinInt32 - 1, domain.MaxInt32 + 1, 1 << 40, -(1 << 40)} {
		if res, _ := (IntegerRangeRule{}).Validate(strconv.FormatInt(n, 10)); res.Accepted {
			t.Errorf("out-of-range %d accepted", n)
		}
	}
}

func TestParseInt32(t *testing.T) {
	got, err := ParseInt32(" -2147483648")
	if err != nil || got != domain.MinInt32 {
		t.Errorf("ParseInt32() = %d, %v", got, err)
	}
	if _, err := ParseInt32("2147483648"); err == nil {
		t.Error("ParseInt32() accepted an out-of-range value")
	}
}
