package pricing

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/math"
	"github.com/krazyTry/tokensale-go/shared"
)

// PriceInfo is a display aggregate. PriceChange is NextTierPrice minus
// CurrentPrice and ChangePercentage is that change in basis points of
// CurrentPrice; both may be negative. ChangePercentage is zero when
// CurrentPrice is zero.
type PriceInfo struct {
	CurrentPrice     *uint256.Int
	NextTierPrice    *uint256.Int
	PriceChange      *big.Int
	ChangePercentage *big.Int
}

type PricePoint struct {
	TokensSold *uint256.Int
	Price      *uint256.Int
}

// CalculateAveragePrice integrates CalculatePrice over [startAmount, endAmount]
// with the midpoint rule on steps equal sub-intervals.
func CalculateAveragePrice(cfg *shared.PriceConfig, startAmount, endAmount *uint256.Int, steps uint64, now uint64) (*uint256.Int, error) {
	if steps == 0 {
		return nil, errors.Wrap(shared.ErrInvalidParameters, "steps must be positive")
	}
	if startAmount == nil || endAmount == nil || !startAmount.Lt(endAmount) {
		return nil, errors.Wrap(shared.ErrInvalidParameters, "empty amount range")
	}
	span := new(uint256.Int).Sub(endAmount, startAmount)
	if span.LtUint64(steps) {
		return nil, errors.Wrapf(shared.ErrInvalidParameters, "range too narrow for %d steps", steps)
	}
	// midpoint of step i is start + span*(2i+1)/(2*steps)
	twoSteps := new(uint256.Int).Lsh(uint256.NewInt(steps), 1)

	total := new(uint256.Int)
	for i := uint64(0); i < steps; i++ {
		odd := new(uint256.Int).Lsh(uint256.NewInt(i), 1)
		odd.AddUint64(odd, 1)
		offset, err := math.MulDiv(span, odd, twoSteps, shared.RoundingDown)
		if err != nil {
			return nil, err
		}
		point := offset.Add(offset, startAmount)

		price, err := CalculatePrice(cfg, point, now)
		if err != nil {
			return nil, errors.WithMessagef(err, "step %d", i)
		}
		if total, err = math.SafeAdd(total, price); err != nil {
			return nil, err
		}
	}
	return total.Div(total, uint256.NewInt(steps)), nil
}

// GetPriceInfo quotes the price at tokensSold and at one tenth of the supply
// further along, clamped to the total supply.
func GetPriceInfo(cfg *shared.PriceConfig, tokensSold *uint256.Int, now uint64) (*PriceInfo, error) {
	current, err := CalculatePrice(cfg, tokensSold, now)
	if err != nil {
		return nil, err
	}

	next := new(uint256.Int).Div(cfg.TotalSupply, uint256.NewInt(10))
	if next, err = math.SafeAdd(tokensSold, next); err != nil {
		return nil, err
	}
	if next.Gt(cfg.TotalSupply) {
		next.Set(cfg.TotalSupply)
	}
	nextPrice, err := CalculatePrice(cfg, next, now)
	if err != nil {
		return nil, err
	}

	change := new(big.Int).Sub(nextPrice.ToBig(), current.ToBig())
	pct := new(big.Int)
	if !current.IsZero() {
		pct.Mul(change, big.NewInt(shared.MaxBasisPoint))
		pct.Quo(pct, current.ToBig())
	}

	return &PriceInfo{
		CurrentPrice:     current,
		NextTierPrice:    nextPrice,
		PriceChange:      change,
		ChangePercentage: pct,
	}, nil
}

// CalculatePriceCurve samples points evenly spaced quotes from zero sold to the
// total supply.
func CalculatePriceCurve(cfg *shared.PriceConfig, points int, now uint64) ([]PricePoint, error) {
	if points < 2 {
		return nil, errors.Wrapf(shared.ErrInvalidParameters, "need at least 2 points, got %d", points)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	intervals := uint256.NewInt(uint64(points - 1))
	curve := make([]PricePoint, 0, points)
	for i := 0; i < points; i++ {
		sold, err := math.MulDiv(cfg.TotalSupply, uint256.NewInt(uint64(i)), intervals, shared.RoundingDown)
		if err != nil {
			return nil, err
		}
		price, err := CalculatePrice(cfg, sold, now)
		if err != nil {
			return nil, errors.WithMessagef(err, "point %d", i)
		}
		curve = append(curve, PricePoint{TokensSold: sold, Price: price})
	}
	return curve, nil
}

// ValidatePriceConfig reports whether cfg is structurally sound and resolves
// to a curve. It never fails; callers must check the result.
func ValidatePriceConfig(cfg *shared.PriceConfig) bool {
	if cfg.Validate() != nil {
		return false
	}
	_, err := ResolveCurve(cfg)
	return err == nil
}
