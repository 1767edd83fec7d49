package math

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/shared"
)

// NaturalLog approximates ln(x) for a fixed-point x and returns a signed
// fixed-point result.
//
// x is first reduced by powers of two into [1, 2). The remainder is then
// expanded as ln(1+δ) around whichever of 1 or 2 is nearer, so |δ| <= 0.5 and
// the ten-term alternating series stays within 5e-5 of the true value.
func NaturalLog(x *uint256.Int) (*big.Int, error) {
	if x.IsZero() {
		return nil, errors.Wrap(shared.ErrInvalidInput, "ln of non-positive value")
	}
	if x.Eq(shared.Precision) {
		return new(big.Int), nil
	}

	two := new(uint256.Int).Lsh(shared.Precision, 1)
	v := x.Clone()
	k := int64(0)
	for !v.Lt(two) {
		v.Rsh(v, 1)
		k++
	}
	for v.Lt(shared.Precision) {
		v.Lsh(v, 1)
		k--
	}

	threshold := new(uint256.Int).Add(shared.Precision, shared.HalfPrecision)
	var series *big.Int
	if v.Lt(threshold) {
		delta := new(uint256.Int).Sub(v, shared.Precision)
		series = lnSeries(delta, false)
	} else {
		// ln(v) = ln(2) + ln(1 - (2-v)/2)
		delta := new(uint256.Int).Sub(two, v)
		delta.Rsh(delta, 1)
		series = lnSeries(delta, true)
		series.Add(series, shared.Ln2.ToBig())
	}

	result := new(big.Int).Mul(big.NewInt(k), shared.Ln2.ToBig())
	return result.Add(result, series), nil
}

// lnSeries sums ln(1+δ) for δ = +delta, or δ = -delta when negative is set.
func lnSeries(delta *uint256.Int, negative bool) *big.Int {
	sum := new(big.Int)
	term := delta.Clone()
	for n := uint64(1); n <= shared.LogTaylorTerms && !term.IsZero(); n++ {
		t := new(uint256.Int).Div(term, uint256.NewInt(n)).ToBig()
		if negative || n%2 == 0 {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
		// delta < 1, so term only shrinks
		term, _ = MulDiv(term, delta, shared.Precision, shared.RoundingDown)
	}
	return sum
}

// Exp approximates e^x for a non-negative fixed-point x as 2^k * e^r with
// r in [0, ln 2).
func Exp(x *uint256.Int) (*uint256.Int, error) {
	k := new(uint256.Int).Div(x, shared.Ln2)
	if !k.LtUint64(256) {
		return nil, errors.Wrapf(shared.ErrOverflow, "exp %s", x.Dec())
	}
	r := new(uint256.Int).Sub(x, new(uint256.Int).Mul(k, shared.Ln2))

	sum := shared.Precision.Clone()
	term := shared.Precision.Clone()
	for n := uint64(1); n <= shared.ExpTaylorTerms; n++ {
		term, _ = MulDiv(term, r, shared.Precision, shared.RoundingDown)
		term.Div(term, uint256.NewInt(n))
		if term.IsZero() {
			break
		}
		sum.Add(sum, term)
	}

	shift := uint(k.Uint64())
	if sum.BitLen()+int(shift) > 256 {
		return nil, errors.Wrapf(shared.ErrOverflow, "exp %s", x.Dec())
	}
	return sum.Lsh(sum, shift), nil
}

// ToUnsigned converts a non-negative signed fixed-point value back to 256 bits.
func ToUnsigned(v *big.Int) (*uint256.Int, error) {
	if v.Sign() < 0 {
		return nil, errors.Wrapf(shared.ErrNegativeResult, "value %s", v.String())
	}
	z, overflow := uint256.FromBig(v)
	if overflow {
		return nil, errors.Wrapf(shared.ErrOverflow, "value %s", v.String())
	}
	return z, nil
}
