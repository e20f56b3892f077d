package random

import (
	"math/rand/v2"
	"strings"
)

// tokenDigits is the base-36 alphabet used by Token.
const tokenDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

// MaxTokenLength is the maximum length of a token returned by Token.
const MaxTokenLength = 13

// Int returns a uniformly distributed integer in [0, n).
func Int(r *rand.Rand, n int) int {
	return r.IntN(n)
}

// Pick returns a uniformly drawn element of values, which must
// not be empty.
func Pick[T any](r *rand.Rand, values []T) T {
	return values[r.IntN(len(values))]
}

// Token returns a short pseudo-random token: the leading base-36
// digits of the fractional part of a uniform draw in [0, 1). The
// expansion stops early when the fraction is exhausted, so tokens
// may be shorter than MaxTokenLength. Tokens carry no structure
// and are not UUIDs.
func Token(r *rand.Rand) string {
	return fractionDigits(r.Float64(), MaxTokenLength)
}

func fractionDigits(f float64, max int) string {
	var sb strings.Builder
	sb.Grow(max)

	for i := 0; i < max && f > 0; i++ {
		f *= 36
		digit := int(f)
		f -= float64(digit)
		sb.WriteByte(tokenDigits[digit])
	}

	return sb.String()
}
