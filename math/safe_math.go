package math

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/shared"
)

func SafeAdd(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, errors.Wrapf(shared.ErrOverflow, "SafeMath: %s + %s", a.Dec(), b.Dec())
	}
	return z, nil
}

func SafeSub(a, b *uint256.Int) (*uint256.Int, error) {
	if b.Gt(a) {
		return nil, errors.Wrapf(shared.ErrNegativeResult, "SafeMath: %s - %s", a.Dec(), b.Dec())
	}
	return new(uint256.Int).Sub(a, b), nil
}

// SafeMul detects overflow by dividing the wrapped product back by a.
func SafeMul(a, b *uint256.Int) (*uint256.Int, error) {
	if a.IsZero() {
		return new(uint256.Int), nil
	}
	c := new(uint256.Int).Mul(a, b)
	if !new(uint256.Int).Div(c, a).Eq(b) {
		return nil, errors.Wrapf(shared.ErrOverflow, "SafeMath: %s * %s", a.Dec(), b.Dec())
	}
	return c, nil
}

func SafeDiv(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, errors.Wrapf(shared.ErrDivisionByZero, "SafeMath: %s / 0", a.Dec())
	}
	return new(uint256.Int).Div(a, b), nil
}

func SafeMod(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, errors.Wrapf(shared.ErrDivisionByZero, "SafeMath: %s %% 0", a.Dec())
	}
	return new(uint256.Int).Mod(a, b), nil
}

// Pow computes base^exponent by squaring. With scaling=true base and result are
// fixed-point values scaled by shared.Precision.
func Pow(base *uint256.Int, exponent uint64, scaling bool) (*uint256.Int, error) {
	one := uint256.NewInt(1)
	if scaling {
		one = shared.Precision
	}

	if exponent == 0 {
		return one.Clone(), nil
	}
	if base.IsZero() {
		return new(uint256.Int), nil
	}
	if base.Eq(one) || exponent == 1 {
		return base.Clone(), nil
	}

	mul := func(x, y *uint256.Int) (*uint256.Int, error) {
		if scaling {
			return MulDiv(x, y, shared.Precision, shared.RoundingDown)
		}
		return SafeMul(x, y)
	}

	var err error
	result := one.Clone()
	currentBase := base.Clone()
	for exp := exponent; exp > 0; {
		if exp&1 == 1 {
			if result, err = mul(result, currentBase); err != nil {
				return nil, errors.WithMessagef(err, "pow %s^%d", base.Dec(), exponent)
			}
		}
		exp >>= 1
		if exp > 0 {
			if currentBase, err = mul(currentBase, currentBase); err != nil {
				return nil, errors.WithMessagef(err, "pow %s^%d", base.Dec(), exponent)
			}
		}
	}
	return result, nil
}
