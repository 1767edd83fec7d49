package shared

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

type Rounding uint8

const (
	RoundingDown Rounding = 0
	RoundingUp   Rounding = 1
)

type PricingModel uint8

const (
	PricingModelLinear         PricingModel = 0
	PricingModelExponential    PricingModel = 1
	PricingModelLogarithmic    PricingModel = 2
	PricingModelSigmoid        PricingModel = 3
	PricingModelDutchAuction   PricingModel = 4
	PricingModelBondingCurve   PricingModel = 5
	PricingModelTimeWeighted   PricingModel = 6
	PricingModelVolumeWeighted PricingModel = 7
)

var pricingModelNames = map[PricingModel]string{
	PricingModelLinear:         "LINEAR",
	PricingModelExponential:    "EXPONENTIAL",
	PricingModelLogarithmic:    "LOGARITHMIC",
	PricingModelSigmoid:        "SIGMOID",
	PricingModelDutchAuction:   "DUTCH_AUCTION",
	PricingModelBondingCurve:   "BONDING_CURVE",
	PricingModelTimeWeighted:   "TIME_WEIGHTED",
	PricingModelVolumeWeighted: "VOLUME_WEIGHTED",
}

func (m PricingModel) String() string {
	if name, ok := pricingModelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PricingModel(%d)", uint8(m))
}

// ParsePricingModel accepts the upper-case model name in any case.
func ParsePricingModel(name string) (PricingModel, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for m, n := range pricingModelNames {
		if n == name {
			return m, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidPricingModel, "unknown model %q", name)
}

type TierType uint8

const (
	TierTypeFixed               TierType = 0
	TierTypePercentageIncrease  TierType = 1
	TierTypeExponentialIncrease TierType = 2
	TierTypeLogarithmicIncrease TierType = 3
)

var tierTypeNames = map[TierType]string{
	TierTypeFixed:               "FIXED",
	TierTypePercentageIncrease:  "PERCENTAGE_INCREASE",
	TierTypeExponentialIncrease: "EXPONENTIAL_INCREASE",
	TierTypeLogarithmicIncrease: "LOGARITHMIC_INCREASE",
}

func (t TierType) String() string {
	if name, ok := tierTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TierType(%d)", uint8(t))
}

func ParseTierType(name string) (TierType, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for t, n := range tierTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidTierConfig, "unknown tier type %q", name)
}

// PriceConfig describes one sale curve. CurrentSupply is advanced by the sale
// manager; nothing in this module mutates it.
type PriceConfig struct {
	InitialPrice  *uint256.Int
	FinalPrice    *uint256.Int
	TotalSupply   *uint256.Int
	CurrentSupply *uint256.Int
	StartTime     uint64
	EndTime       uint64
	Model         PricingModel
	Parameters    []*uint256.Int
}

// Parameter returns Parameters[i], or def when it is absent.
func (c *PriceConfig) Parameter(i int, def *uint256.Int) *uint256.Int {
	if i < len(c.Parameters) && c.Parameters[i] != nil {
		return c.Parameters[i]
	}
	return def
}

// Validate reports the first violated structural invariant.
func (c *PriceConfig) Validate() error {
	if c == nil {
		return errors.Wrap(ErrInvalidParameters, "nil price config")
	}
	if isZero(c.InitialPrice) {
		return errors.Wrap(ErrInvalidParameters, "initial price must be positive")
	}
	if isZero(c.TotalSupply) {
		return errors.Wrap(ErrInvalidParameters, "total supply must be positive")
	}
	if c.FinalPrice == nil {
		return errors.Wrap(ErrInvalidParameters, "final price is nil")
	}
	if c.EndTime != 0 && c.EndTime <= c.StartTime {
		return errors.Wrapf(ErrInvalidParameters, "end time %d not after start time %d", c.EndTime, c.StartTime)
	}
	switch c.Model {
	case PricingModelExponential, PricingModelSigmoid:
		if len(c.Parameters) < 1 || c.Parameters[0] == nil {
			return errors.Wrapf(ErrInvalidParameters, "%s requires at least one parameter", c.Model)
		}
	case PricingModelDutchAuction:
		if !c.FinalPrice.Lt(c.InitialPrice) {
			return errors.Wrap(ErrInvalidParameters, "dutch auction final price must be below initial price")
		}
		if c.EndTime == 0 {
			return errors.Wrap(ErrInvalidParameters, "dutch auction requires an end time")
		}
	case PricingModelTimeWeighted:
		if c.EndTime == 0 {
			return errors.Wrap(ErrInvalidParameters, "time weighted pricing requires an end time")
		}
	case PricingModelBondingCurve:
		if ratio := c.Parameter(0, nil); ratio != nil {
			if ratio.IsZero() || ratio.GtUint64(MaxBasisPoint) {
				return errors.Wrapf(ErrInvalidParameters, "reserve ratio %s out of (0, %d]", ratio.Dec(), MaxBasisPoint)
			}
		}
	case PricingModelLinear, PricingModelLogarithmic, PricingModelVolumeWeighted:
	default:
		return errors.Wrapf(ErrInvalidPricingModel, "model %d", uint8(c.Model))
	}
	return nil
}

type PriceTier struct {
	Threshold     *uint256.Int
	Price         *uint256.Int
	PriceIncrease *uint256.Int
	TierType      TierType
	IsActive      bool
}

// BondingCurveConfig is a constant-reserve-ratio curve. ReserveRatio is in
// basis points.
type BondingCurveConfig struct {
	ReserveRatio   uint64
	InitialReserve *uint256.Int
	CurrentReserve *uint256.Int
	TotalSupply    *uint256.Int
	CurrentSupply  *uint256.Int
}

func isZero(v *uint256.Int) bool {
	return v == nil || v.IsZero()
}
