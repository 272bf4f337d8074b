package domain

import "math"

// Bounds of the supported integer range (a signed 4-byte int).
const (
	MinInt32 = math.MinInt32
	MaxInt32 = math.MaxInt32
)

// InInt32Range reports whether n fits in a signed 32-bit integer.
func InInt32Range(n int64) bool {
	return n >= MinInt32 && n <= MaxInt32
}

// NumberPair holds the two integers collected from the operator.
type NumberPair struct {
	First  int32
	Second int32
}

// Sum returns First+Second, or an OverflowError if the result does not fit
// in 32 bits.
func (p NumberPair) Sum() (int32, error) {
	s := int64(p.First) + int64(p.Second)
	if !InInt32Range(s) {
		return 0, &OverflowError{Op: "addition", Value: s}
	}
	return int32(s), nil
}

// Product returns First*Second, or an OverflowError if the result does not
// fit in 32 bits. The product of two int32 values always fits in an int64.
func (p NumberPair) Product() (int32, error) {
	m := int64(p.First) * int64(p.Second)
	if !InInt32Range(m) {
		return 0, &OverflowError{Op: "multiplication", Value: m}
	}
	return int32(m), nil
}
