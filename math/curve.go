package math

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/shared"
)

// Interpolate moves from `from` towards `to` by num/den of the distance. It
// works in both directions.
func Interpolate(from, to, num, den *uint256.Int) (*uint256.Int, error) {
	if den.IsZero() {
		return nil, errors.Wrap(shared.ErrDivisionByZero, "interpolate")
	}
	if !to.Lt(from) {
		delta := new(uint256.Int).Sub(to, from)
		step, err := MulDiv(delta, num, den, shared.RoundingDown)
		if err != nil {
			return nil, err
		}
		return SafeAdd(from, step)
	}
	delta := new(uint256.Int).Sub(from, to)
	step, err := MulDiv(delta, num, den, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	return SafeSub(from, step)
}

// DynamicPrice is the straight line from initialPrice at zero sold to
// finalPrice at totalSupply.
func DynamicPrice(initialPrice, finalPrice, tokensSold, totalSupply *uint256.Int) (*uint256.Int, error) {
	return Interpolate(initialPrice, finalPrice, tokensSold, totalSupply)
}

// ExponentialPrice approximates initialPrice * e^(rate*x), x = tokensSold/totalSupply,
// with the second-order Taylor polynomial 1 + rx + (rx)^2/2.
func ExponentialPrice(initialPrice, rate, tokensSold, totalSupply *uint256.Int) (*uint256.Int, error) {
	progress, err := Ratio(tokensSold, totalSupply)
	if err != nil {
		return nil, err
	}
	rx, err := MulDiv(rate, progress, shared.Precision, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	twoPrecision := new(uint256.Int).Lsh(shared.Precision, 1)
	quadratic, err := MulDiv(rx, rx, twoPrecision, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	factor, err := SafeAdd(shared.Precision, rx)
	if err != nil {
		return nil, err
	}
	if factor, err = SafeAdd(factor, quadratic); err != nil {
		return nil, err
	}
	return MulDiv(initialPrice, factor, shared.Precision, shared.RoundingDown)
}

// LogarithmicPrice interpolates with weight ln(1+x)/ln(2), reaching finalPrice
// at totalSupply. Zero sold is exactly initialPrice.
func LogarithmicPrice(initialPrice, finalPrice, tokensSold, totalSupply *uint256.Int) (*uint256.Int, error) {
	if tokensSold.IsZero() {
		return initialPrice.Clone(), nil
	}
	progress, err := Ratio(tokensSold, totalSupply)
	if err != nil {
		return nil, err
	}
	arg, err := SafeAdd(shared.Precision, progress)
	if err != nil {
		return nil, err
	}
	ln, err := NaturalLog(arg)
	if err != nil {
		return nil, err
	}
	weight, err := ToUnsigned(ln)
	if err != nil {
		return nil, err
	}
	return Interpolate(initialPrice, finalPrice, weight, shared.Ln2)
}
