package pricing

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/shared"
)

// Curve is the resolved form of a PriceConfig's model tag. Each variant holds
// only the parameters its model reads; the set is closed to this package.
type Curve interface {
	Model() shared.PricingModel
	curve()
}

type Linear struct{}

// Exponential grows as e^(Rate*x), approximated to second order.
type Exponential struct {
	Rate *uint256.Int
}

type Logarithmic struct{}

// Sigmoid centres the S-curve at Midpoint (a progress fraction) with
// Steepness as the slope factor k.
type Sigmoid struct {
	Steepness *uint256.Int
	Midpoint  *uint256.Int
}

type DutchAuction struct{}

// BondingCurve prices along a constant reserve ratio curve. VirtualSupply
// anchors the curve so that zero sold prices at InitialPrice.
type BondingCurve struct {
	ReserveRatio  uint64
	VirtualSupply *uint256.Int
}

type TimeWeighted struct {
	Multiplier *uint256.Int
}

type VolumeWeighted struct {
	Weight *uint256.Int
}

func (Linear) Model() shared.PricingModel         { return shared.PricingModelLinear }
func (Exponential) Model() shared.PricingModel    { return shared.PricingModelExponential }
func (Logarithmic) Model() shared.PricingModel    { return shared.PricingModelLogarithmic }
func (Sigmoid) Model() shared.PricingModel        { return shared.PricingModelSigmoid }
func (DutchAuction) Model() shared.PricingModel   { return shared.PricingModelDutchAuction }
func (BondingCurve) Model() shared.PricingModel   { return shared.PricingModelBondingCurve }
func (TimeWeighted) Model() shared.PricingModel   { return shared.PricingModelTimeWeighted }
func (VolumeWeighted) Model() shared.PricingModel { return shared.PricingModelVolumeWeighted }

func (Linear) curve()         {}
func (Exponential) curve()    {}
func (Logarithmic) curve()    {}
func (Sigmoid) curve()        {}
func (DutchAuction) curve()   {}
func (BondingCurve) curve()   {}
func (TimeWeighted) curve()   {}
func (VolumeWeighted) curve() {}

// ResolveCurve maps cfg.Model and cfg.Parameters onto a Curve variant,
// filling in defaults for optional parameters.
//
//	EXPONENTIAL     [rate]
//	SIGMOID         [steepness, midpoint=0.5]
//	BONDING_CURVE   [reserveRatioBps=5000, virtualSupply=totalSupply]
//	TIME_WEIGHTED   [multiplier=1.0]
//	VOLUME_WEIGHTED [weight=0.1]
func ResolveCurve(cfg *shared.PriceConfig) (Curve, error) {
	switch cfg.Model {
	case shared.PricingModelLinear:
		return Linear{}, nil
	case shared.PricingModelExponential:
		rate := cfg.Parameter(0, nil)
		if rate == nil {
			return nil, errors.Wrap(shared.ErrInvalidParameters, "exponential rate missing")
		}
		return Exponential{Rate: rate}, nil
	case shared.PricingModelLogarithmic:
		return Logarithmic{}, nil
	case shared.PricingModelSigmoid:
		steepness := cfg.Parameter(0, nil)
		if steepness == nil {
			return nil, errors.Wrap(shared.ErrInvalidParameters, "sigmoid steepness missing")
		}
		return Sigmoid{Steepness: steepness, Midpoint: cfg.Parameter(1, shared.HalfPrecision)}, nil
	case shared.PricingModelDutchAuction:
		return DutchAuction{}, nil
	case shared.PricingModelBondingCurve:
		ratio := cfg.Parameter(0, uint256.NewInt(shared.DefaultReserveRatioBps))
		if ratio.IsZero() || ratio.GtUint64(shared.MaxBasisPoint) {
			return nil, errors.Wrapf(shared.ErrInvalidParameters, "reserve ratio %s", ratio.Dec())
		}
		virtualSupply := cfg.Parameter(1, cfg.TotalSupply)
		if virtualSupply == nil || virtualSupply.IsZero() {
			return nil, errors.Wrap(shared.ErrInvalidParameters, "virtual supply is zero")
		}
		return BondingCurve{ReserveRatio: ratio.Uint64(), VirtualSupply: virtualSupply}, nil
	case shared.PricingModelTimeWeighted:
		return TimeWeighted{Multiplier: cfg.Parameter(0, shared.Precision)}, nil
	case shared.PricingModelVolumeWeighted:
		return VolumeWeighted{Weight: cfg.Parameter(0, shared.DefaultVolumeWeight)}, nil
	default:
		return nil, errors.Wrapf(shared.ErrInvalidPricingModel, "model %d", uint8(cfg.Model))
	}
}
