package math

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/shared"
)

// MulDiv computes x*y/denominator with a 512-bit intermediate product.
func MulDiv(x, y, denominator *uint256.Int, rounding shared.Rounding) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, errors.Wrap(shared.ErrDivisionByZero, "MulDiv")
	}
	if x.IsZero() || y.IsZero() {
		return new(uint256.Int), nil
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, denominator)
	if overflow {
		return nil, errors.Wrapf(shared.ErrOverflow, "MulDiv: %s * %s / %s", x.Dec(), y.Dec(), denominator.Dec())
	}
	if rounding == shared.RoundingUp && !new(uint256.Int).MulMod(x, y, denominator).IsZero() {
		return SafeAdd(z, uint256.NewInt(1))
	}
	return z, nil
}

// Sqrt returns floor(sqrt(value)) using Newton's iteration.
func Sqrt(value *uint256.Int) *uint256.Int {
	if value.IsZero() {
		return new(uint256.Int)
	}
	if value.LtUint64(4) {
		return uint256.NewInt(1)
	}
	x := value.Clone()
	y := new(uint256.Int).Rsh(value, 1)
	y.AddUint64(y, 1)

	for y.Lt(x) {
		x.Set(y)
		y = new(uint256.Int).Div(value, x)
		y.Add(y, x)
		y.Rsh(y, 1)
	}
	return x
}

func ToFixed(v uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(v), shared.Precision)
}

// Ratio returns num/den as a fixed-point value.
func Ratio(num, den *uint256.Int) (*uint256.Int, error) {
	return MulDiv(num, shared.Precision, den, shared.RoundingDown)
}
