// Package numerics provides the base-2-logarithm-valued math primitives that
// every attack-algorithm cost function is built from: log-factorials,
// log-binomials, entropy, and the log-space addition used to combine
// alternative attack branches without overflowing float64.
//
// Every exported function here is pure and returns math.Inf(1) rather than an
// error on inputs that make the result infinite in context (an empty
// binomial coefficient, a zero-probability entropy). Negative arguments that
// no valid problem or tuning parameter could ever produce are programmer
// errors and panic via apperr.Panic, per spec.md's error taxonomy.
package numerics

import (
	"math"

	"github.com/agbru/hardness-estimator/internal/apperr"
)

// Log2Factorial returns log2(n!), computed as a running sum rather than via
// Stirling's approximation so that small n stay exact under float64 rounding.
// Log2Factorial(0) = Log2Factorial(1) = 0.
func Log2Factorial(n float64) float64 {
	if n < 0 {
		apperr.Panic("numerics: Log2Factorial called with negative n=%g", n)
	}
	if n <= 1 {
		return 0
	}
	sum := 0.0
	for i := 2.0; i <= n; i++ {
		sum += math.Log2(i)
	}
	return sum
}

// Log2Binomial returns log2(C(n, k)). It returns 0 for k<0 or k>n, matching
// the convention that an empty/impossible choice contributes no bits rather
// than -Inf, so downstream sums stay finite by default.
func Log2Binomial(n, k float64) float64 {
	if n < 0 {
		apperr.Panic("numerics: Log2Binomial called with negative n=%g", n)
	}
	if k < 0 || k > n {
		return 0
	}
	return Log2Factorial(n) - Log2Factorial(k) - Log2Factorial(n-k)
}

// Log2Multinomial returns log2(n! / (k1! * k2! * ... * km!)) for a partition
// of n into the given parts. It panics if the parts do not sum to n, since
// that can only happen from a programmer error in how the partition was
// constructed.
func Log2Multinomial(n float64, ks ...float64) float64 {
	if n < 0 {
		apperr.Panic("numerics: Log2Multinomial called with negative n=%g", n)
	}
	sum := 0.0
	for _, k := range ks {
		if k < 0 {
			apperr.Panic("numerics: Log2Multinomial called with negative part k=%g", k)
		}
		sum += k
	}
	if math.Abs(sum-n) > 1e-6 {
		apperr.Panic("numerics: Log2Multinomial parts sum to %g, want %g", sum, n)
	}
	result := Log2Factorial(n)
	for _, k := range ks {
		result -= Log2Factorial(k)
	}
	return result
}

// BinaryEntropy returns the binary entropy function H(x) = -x*log2(x) -
// (1-x)*log2(1-x) for x in (0,1). It returns 0 at the boundary points x=0 and
// x=1, where the terms vanish in the limit.
func BinaryEntropy(x float64) float64 {
	if x < 0 || x > 1 {
		apperr.Panic("numerics: BinaryEntropy called with out-of-range x=%g", x)
	}
	if x == 0 || x == 1 {
		return 0
	}
	return -x*math.Log2(x) - (1-x)*math.Log2(1-x)
}

// GaussianBinomial returns the q-binomial coefficient [m choose r]_q,
//
//	Π_{i=0..r-1} (1 - q^(m-i)) / (1 - q^(i+1))
//
// computed by accumulating real ratios rather than in log space: the source
// estimator uses it in magnitude form (e.g. as a multiplicative correction
// factor), and its value is always >= 1 for the domains this package is
// exercised on, so accumulating factors directly does not risk overflow for
// the parameter sizes cryptographic estimators operate at.
func GaussianBinomial(m, r, q float64) float64 {
	if r < 0 || r > m {
		return 0
	}
	result := 1.0
	for i := 0.0; i < r; i++ {
		result *= (1 - math.Pow(q, m-i)) / (1 - math.Pow(q, i+1))
	}
	return result
}

// Log2Add returns log2(2^a + 2^b), computed without ever forming 2^a or 2^b
// directly so that large exponents (the norm in this package) never
// overflow. +Inf absorbs: Log2Add(+Inf, anything) is +Inf.
func Log2Add(a, b float64) float64 {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.Inf(1)
	}
	hi, lo := a, b
	if lo > hi {
		hi, lo = lo, hi
	}
	return hi + math.Log2(1+math.Pow(2, lo-hi))
}

// CeilToPrecision rounds (or, if truncate is true, truncates) x to the given
// number of fractional base-10 digits. Negative or non-finite x pass through
// unchanged other than the requested rounding, since the sentinel +Inf/-Inf
// values used throughout this system must survive rendering untouched.
func CeilToPrecision(x float64, digits int, truncate bool) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	scale := math.Pow(10, float64(digits))
	if truncate {
		if x >= 0 {
			return math.Floor(x*scale) / scale
		}
		return math.Ceil(x*scale) / scale
	}
	return math.Round(x*scale) / scale
}
