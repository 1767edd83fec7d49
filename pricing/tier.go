package pricing

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/math"
	"github.com/krazyTry/tokensale-go/shared"
)

// CalculateTieredPrice picks the first active tier whose threshold is at or
// above tokensSold and prices it by its tier type. When no tier covers
// tokensSold the last tier is used.
func CalculateTieredPrice(tiers []shared.PriceTier, tokensSold *uint256.Int) (*uint256.Int, int, error) {
	if len(tiers) == 0 {
		return nil, 0, errors.Wrap(shared.ErrInvalidTierConfig, "empty tier list")
	}
	if tokensSold == nil {
		return nil, 0, errors.Wrap(shared.ErrInvalidInput, "tokens sold is nil")
	}

	index := len(tiers) - 1
	for i := range tiers {
		if tiers[i].IsActive && tiers[i].Threshold != nil && !tiers[i].Threshold.Lt(tokensSold) {
			index = i
			break
		}
	}

	price, err := tierPrice(tiers, index, tokensSold)
	if err != nil {
		return nil, 0, errors.WithMessagef(err, "tier %d", index)
	}
	return price, index, nil
}

func tierPrice(tiers []shared.PriceTier, index int, sold *uint256.Int) (*uint256.Int, error) {
	tier := tiers[index]
	if tier.Price == nil || tier.Price.IsZero() {
		return nil, errors.Wrap(shared.ErrInvalidTierConfig, "tier price is zero")
	}
	increase := tier.PriceIncrease
	if increase == nil {
		increase = new(uint256.Int)
	}

	switch tier.TierType {
	case shared.TierTypeFixed:
		return tier.Price.Clone(), nil
	case shared.TierTypePercentageIncrease:
		bump, err := math.CalculatePercentage(tier.Price, increase)
		if err != nil {
			return nil, err
		}
		return math.SafeAdd(tier.Price, bump)
	case shared.TierTypeExponentialIncrease:
		growth, err := math.SafeAdd(shared.Precision, increase)
		if err != nil {
			return nil, err
		}
		factor, err := math.Pow(growth, uint64(index), true)
		if err != nil {
			return nil, err
		}
		return math.MulDiv(tier.Price, factor, shared.Precision, shared.RoundingDown)
	case shared.TierTypeLogarithmicIncrease:
		arg, err := math.SafeAdd(shared.Precision, tierProgress(tiers, index, sold))
		if err != nil {
			return nil, err
		}
		ln, err := math.NaturalLog(arg)
		if err != nil {
			return nil, err
		}
		weight, err := math.ToUnsigned(ln)
		if err != nil {
			return nil, err
		}
		bump, err := math.MulDiv(increase, weight, shared.Precision, shared.RoundingDown)
		if err != nil {
			return nil, err
		}
		return math.SafeAdd(tier.Price, bump)
	default:
		return nil, errors.Wrapf(shared.ErrInvalidTierConfig, "tier type %s", tier.TierType)
	}
}

// tierProgress is how far sold has moved from the previous threshold to this
// tier's threshold, as a fixed-point fraction capped at one.
func tierProgress(tiers []shared.PriceTier, index int, sold *uint256.Int) *uint256.Int {
	from := new(uint256.Int)
	if index > 0 && tiers[index-1].Threshold != nil {
		from = tiers[index-1].Threshold
	}
	to := tiers[index].Threshold
	if to == nil || !from.Lt(to) || !sold.Lt(to) {
		return shared.Precision.Clone()
	}
	if !from.Lt(sold) {
		return new(uint256.Int)
	}
	progress, _ := math.Ratio(new(uint256.Int).Sub(sold, from), new(uint256.Int).Sub(to, from))
	return progress
}

// ValidateTiers checks that tiers are non-empty, priced, strictly ascending by
// threshold and carry a known tier type.
func ValidateTiers(tiers []shared.PriceTier) error {
	if len(tiers) == 0 {
		return errors.Wrap(shared.ErrInvalidTierConfig, "empty tier list")
	}
	var prev *uint256.Int
	for i, tier := range tiers {
		if tier.Threshold == nil {
			return errors.Wrapf(shared.ErrInvalidTierConfig, "tier %d: threshold is nil", i)
		}
		if tier.Price == nil || tier.Price.IsZero() {
			return errors.Wrapf(shared.ErrInvalidTierConfig, "tier %d: price must be positive", i)
		}
		if tier.TierType > shared.TierTypeLogarithmicIncrease {
			return errors.Wrapf(shared.ErrInvalidTierConfig, "tier %d: %s", i, tier.TierType)
		}
		if prev != nil && !prev.Lt(tier.Threshold) {
			return errors.Wrapf(shared.ErrInvalidTierConfig, "tier %d: threshold %s not above %s", i, tier.Threshold.Dec(), prev.Dec())
		}
		prev = tier.Threshold
	}
	return nil
}
