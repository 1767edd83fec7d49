package pricing

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/math"
	"github.com/krazyTry/tokensale-go/shared"
)

var maxBasisPoint = uint256.NewInt(shared.MaxBasisPoint)

// CalculateBondingCurvePrice returns the Bancor spot price
//
//	currentReserve / ((currentSupply + purchaseAmount) * reserveRatio)
//
// reserveRatio is in basis points, so the quotient is scaled by 10000 rather
// than read as a plain fraction. An empty curve prices as if one whole token
// were in supply so it still quotes a finite price.
func CalculateBondingCurvePrice(bc *shared.BondingCurveConfig, purchaseAmount *uint256.Int) (*uint256.Int, error) {
	if bc == nil {
		return nil, errors.Wrap(shared.ErrInvalidParameters, "nil bonding curve")
	}
	if bc.ReserveRatio == 0 || bc.ReserveRatio > shared.MaxBasisPoint {
		return nil, errors.Wrapf(shared.ErrInvalidParameters, "reserve ratio %d", bc.ReserveRatio)
	}
	if bc.CurrentReserve == nil || bc.CurrentReserve.IsZero() {
		return nil, errors.Wrap(shared.ErrInvalidParameters, "current reserve is zero")
	}

	supply := new(uint256.Int)
	if bc.CurrentSupply != nil {
		supply.Set(bc.CurrentSupply)
	}
	if purchaseAmount != nil {
		var err error
		if supply, err = math.SafeAdd(supply, purchaseAmount); err != nil {
			return nil, err
		}
	}
	if supply.IsZero() {
		supply.Set(shared.Precision)
	}

	weightedSupply, err := math.SafeMul(supply, uint256.NewInt(bc.ReserveRatio))
	if err != nil {
		return nil, err
	}
	scaledReserve, err := math.SafeMul(bc.CurrentReserve, maxBasisPoint)
	if err != nil {
		return nil, err
	}
	return math.MulDiv(scaledReserve, shared.Precision, weightedSupply, shared.RoundingDown)
}

// bondingCurveModelPrice walks a constant reserve ratio curve anchored at a
// virtual supply V. The reserve follows R(s) = R0 * (s/V)^(1/r) where s is the
// virtual plus sold supply, and R0 is chosen so the spot price at zero sold is
// InitialPrice.
func bondingCurveModelPrice(c BondingCurve, cfg *shared.PriceConfig, sold *uint256.Int) (*uint256.Int, error) {
	ratio := uint256.NewInt(c.ReserveRatio)

	initialReserve, err := math.MulDiv(cfg.InitialPrice, c.VirtualSupply, shared.Precision, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	if initialReserve, err = math.MulDiv(initialReserve, ratio, maxBasisPoint, shared.RoundingDown); err != nil {
		return nil, err
	}

	supply, err := math.SafeAdd(sold, c.VirtualSupply)
	if err != nil {
		return nil, err
	}
	growthBase, err := math.Ratio(supply, c.VirtualSupply)
	if err != nil {
		return nil, err
	}
	ln, err := math.NaturalLog(growthBase)
	if err != nil {
		return nil, err
	}
	lnBase, err := math.ToUnsigned(ln)
	if err != nil {
		return nil, err
	}
	exponent, err := math.MulDiv(lnBase, maxBasisPoint, ratio, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	growth, err := math.Exp(exponent)
	if err != nil {
		return nil, err
	}
	reserve, err := math.MulDiv(initialReserve, growth, shared.Precision, shared.RoundingDown)
	if err != nil {
		return nil, err
	}

	return CalculateBondingCurvePrice(&shared.BondingCurveConfig{
		ReserveRatio:   c.ReserveRatio,
		InitialReserve: initialReserve,
		CurrentReserve: reserve,
		TotalSupply:    cfg.TotalSupply,
		CurrentSupply:  supply,
	}, nil)
}
