// Package num provides the arbitrary-precision numeric type used throughout
// the compiler and counter drivers. spec.md treats this type ("Num") as an
// opaque collaborator; this package backs it with shopspring/decimal so that
// unweighted (exact integer) and weighted (fractional) counts share one
// representation and one set of arithmetic rules.
package num

import "github.com/shopspring/decimal"

// Num is an arbitrary-precision decimal value. The zero value is 0;
// construct other values with One, FromInt64 or FromFloat64.
type Num struct {
	d decimal.Decimal
}

// Zero returns the additive identity.
func Zero() Num { return Num{d: decimal.Zero} }

// One returns the multiplicative identity.
func One() Num { return Num{d: decimal.New(1, 0)} }

// FromInt64 builds a Num from an exact integer, used for unweighted counts.
func FromInt64(v int64) Num { return Num{d: decimal.New(v, 0)} }

// FromFloat64 builds a Num from a literal weight.
func FromFloat64(v float64) Num { return Num{d: decimal.NewFromFloat(v)} }

// Add returns a + b.
func (a Num) Add(b Num) Num { return Num{d: a.d.Add(b.d)} }

// Mul returns a * b.
func (a Num) Mul(b Num) Num { return Num{d: a.d.Mul(b.d)} }

// IsZero reports whether the value is exactly zero.
func (a Num) IsZero() bool { return a.d.IsZero() }

// Equal reports exact equality.
func (a Num) Equal(b Num) bool { return a.d.Equal(b.d) }

// Cmp returns -1, 0 or 1 comparing a to b.
func (a Num) Cmp(b Num) int { return a.d.Cmp(b.d) }

// String renders the value with trailing zeros trimmed, matching the `s
// <number>` output contract of §6.
func (a Num) String() string { return a.d.String() }

// SetPrecision rounds a copy of a to the given number of significant
// fractional bits, approximated here as decimal places, per the
// `-precision <bits>` CLI flag of §6.
func (a Num) SetPrecision(bits int) Num {
	if bits <= 0 {
		return a
	}
	places := int32(bits) / 3 // rough bits-to-decimal-digits conversion
	if places < 1 {
		places = 1
	}
	return Num{d: a.d.Round(places)}
}
