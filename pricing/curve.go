package pricing

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/math"
	"github.com/krazyTry/tokensale-go/shared"
)

// CalculatePrice quotes the unit price of cfg after tokensSold tokens at unix
// time now, then enforces the sale's price band.
func CalculatePrice(cfg *shared.PriceConfig, tokensSold *uint256.Int, now uint64) (*uint256.Int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tokensSold == nil {
		return nil, errors.Wrap(shared.ErrInvalidInput, "tokens sold is nil")
	}
	c, err := ResolveCurve(cfg)
	if err != nil {
		return nil, err
	}

	price, err := curvePrice(c, cfg, tokensSold, now)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s price at %s sold", c.Model(), tokensSold.Dec())
	}
	if err := checkBounds(cfg.InitialPrice, price); err != nil {
		return nil, err
	}
	return price, nil
}

func curvePrice(c Curve, cfg *shared.PriceConfig, sold *uint256.Int, now uint64) (*uint256.Int, error) {
	switch c := c.(type) {
	case Linear:
		return math.DynamicPrice(cfg.InitialPrice, cfg.FinalPrice, sold, cfg.TotalSupply)
	case Exponential:
		return math.ExponentialPrice(cfg.InitialPrice, c.Rate, sold, cfg.TotalSupply)
	case Logarithmic:
		return math.LogarithmicPrice(cfg.InitialPrice, cfg.FinalPrice, sold, cfg.TotalSupply)
	case Sigmoid:
		return sigmoidPrice(c, cfg, sold)
	case DutchAuction:
		return dutchAuctionPrice(cfg, now)
	case BondingCurve:
		return bondingCurveModelPrice(c, cfg, sold)
	case TimeWeighted:
		return timeWeightedPrice(c, cfg, sold, now)
	case VolumeWeighted:
		return volumeWeightedPrice(c, cfg, sold)
	default:
		return nil, errors.Wrapf(shared.ErrInvalidPricingModel, "curve %T", c)
	}
}

// checkBounds keeps price within [initial/10, initial*1000].
func checkBounds(initialPrice, price *uint256.Int) error {
	lower := new(uint256.Int).Div(initialPrice, uint256.NewInt(shared.MinPriceDivisor))
	if price.Lt(lower) {
		return errors.Wrapf(shared.ErrPriceExceedsLimit, "price %s below floor %s", price.Dec(), lower.Dec())
	}
	upper, overflow := new(uint256.Int).MulOverflow(initialPrice, uint256.NewInt(shared.MaxPriceMultiplier))
	if !overflow && price.Gt(upper) {
		return errors.Wrapf(shared.ErrPriceExceedsLimit, "price %s above ceiling %s", price.Dec(), upper.Dec())
	}
	return nil
}

// sigmoidPrice maps the logistic shape onto [initial, final] with the
// rational form s(z) = 1/2 + z/(2(1+|z|)), z = k(x-x0). s is continuous and
// odd around the midpoint, so the curve is symmetric and strictly increasing.
func sigmoidPrice(c Sigmoid, cfg *shared.PriceConfig, sold *uint256.Int) (*uint256.Int, error) {
	progress, err := math.Ratio(sold, cfg.TotalSupply)
	if err != nil {
		return nil, err
	}
	precision := shared.Precision.ToBig()
	half := shared.HalfPrecision.ToBig()

	z := new(big.Int).Sub(progress.ToBig(), c.Midpoint.ToBig())
	z.Mul(z, c.Steepness.ToBig())
	z.Quo(z, precision)

	den := new(big.Int).Abs(z)
	den.Add(den, precision)
	s := new(big.Int).Mul(z, half)
	s.Quo(s, den)
	s.Add(s, half)

	weight, err := math.ToUnsigned(s)
	if err != nil {
		return nil, err
	}
	return math.Interpolate(cfg.InitialPrice, cfg.FinalPrice, weight, shared.Precision)
}

func dutchAuctionPrice(cfg *shared.PriceConfig, now uint64) (*uint256.Int, error) {
	switch {
	case now <= cfg.StartTime:
		return cfg.InitialPrice.Clone(), nil
	case now >= cfg.EndTime:
		return cfg.FinalPrice.Clone(), nil
	}
	elapsed := uint256.NewInt(now - cfg.StartTime)
	window := uint256.NewInt(cfg.EndTime - cfg.StartTime)
	return math.Interpolate(cfg.InitialPrice, cfg.FinalPrice, elapsed, window)
}

// timeWeight is the elapsed fraction of the sale window, clamped to [0, 1].
func timeWeight(cfg *shared.PriceConfig, now uint64) *uint256.Int {
	switch {
	case now <= cfg.StartTime:
		return new(uint256.Int)
	case now >= cfg.EndTime:
		return shared.Precision.Clone()
	}
	w, _ := math.Ratio(uint256.NewInt(now-cfg.StartTime), uint256.NewInt(cfg.EndTime-cfg.StartTime))
	return w
}

func timeWeightedPrice(c TimeWeighted, cfg *shared.PriceConfig, sold *uint256.Int, now uint64) (*uint256.Int, error) {
	base, err := math.DynamicPrice(cfg.InitialPrice, cfg.FinalPrice, sold, cfg.TotalSupply)
	if err != nil {
		return nil, err
	}
	adjustment, err := math.MulDiv(base, timeWeight(cfg, now), shared.Precision, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	if adjustment, err = math.MulDiv(adjustment, c.Multiplier, shared.Precision, shared.RoundingDown); err != nil {
		return nil, err
	}
	return math.SafeAdd(base, adjustment)
}

func volumeWeightedPrice(c VolumeWeighted, cfg *shared.PriceConfig, sold *uint256.Int) (*uint256.Int, error) {
	base, err := math.DynamicPrice(cfg.InitialPrice, cfg.FinalPrice, sold, cfg.TotalSupply)
	if err != nil {
		return nil, err
	}
	volumeRatio, err := math.Ratio(sold, cfg.TotalSupply)
	if err != nil {
		return nil, err
	}
	bonus, err := math.MulDiv(volumeRatio, c.Weight, shared.Precision, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	factor, err := math.SafeAdd(shared.Precision, bonus)
	if err != nil {
		return nil, err
	}
	return math.MulDiv(base, factor, shared.Precision, shared.RoundingDown)
}
