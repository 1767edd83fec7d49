package pricing

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/math"
	"github.com/krazyTry/tokensale-go/shared"
)

// CalculatePriceImpact estimates slippage for a purchase against the available
// liquidity. impactFactor is in basis points; the returned impact is the
// absolute price increase and newPrice is currentPrice plus that impact.
func CalculatePriceImpact(currentPrice, purchaseAmount, totalLiquidity, impactFactor *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	if totalLiquidity == nil || totalLiquidity.IsZero() {
		return nil, nil, errors.Wrap(shared.ErrInsufficientLiquidity, "total liquidity is zero")
	}
	if currentPrice == nil || purchaseAmount == nil || impactFactor == nil {
		return nil, nil, errors.Wrap(shared.ErrInvalidInput, "nil price impact argument")
	}

	ratioBps, err := math.MulDiv(purchaseAmount, maxBasisPoint, totalLiquidity, shared.RoundingDown)
	if err != nil {
		return nil, nil, err
	}
	impact, err := math.CalculateBasisPoints(currentPrice, ratioBps)
	if err != nil {
		return nil, nil, err
	}
	if impact, err = math.CalculateBasisPoints(impact, impactFactor); err != nil {
		return nil, nil, err
	}
	newPrice, err := math.SafeAdd(currentPrice, impact)
	if err != nil {
		return nil, nil, err
	}
	return newPrice, impact, nil
}
