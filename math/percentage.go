package math

import (
	"github.com/holiman/uint256"

	"github.com/krazyTry/tokensale-go/shared"
)

var (
	maxPercentage = uint256.NewInt(shared.MaxPercentage)
	maxBasisPoint = uint256.NewInt(shared.MaxBasisPoint)
)

// CalculatePercentage returns amount*pct/100.
func CalculatePercentage(amount, pct *uint256.Int) (*uint256.Int, error) {
	if amount.IsZero() || pct.IsZero() {
		return new(uint256.Int), nil
	}
	product, err := SafeMul(amount, pct)
	if err != nil {
		return nil, err
	}
	return product.Div(product, maxPercentage), nil
}

// CalculateBasisPoints returns amount*bps/10000.
func CalculateBasisPoints(amount, bps *uint256.Int) (*uint256.Int, error) {
	if amount.IsZero() || bps.IsZero() {
		return new(uint256.Int), nil
	}
	product, err := SafeMul(amount, bps)
	if err != nil {
		return nil, err
	}
	return product.Div(product, maxBasisPoint), nil
}
