package shared

import (
	"github.com/holiman/uint256"
)

const (
	Decimals = 18

	MaxBasisPoint = 10_000
	MaxPercentage = 100

	// price bounds relative to the initial price
	MinPriceDivisor    = 10
	MaxPriceMultiplier = 1000

	LogTaylorTerms = 10
	ExpTaylorTerms = 20

	DefaultReserveRatioBps = 5_000
)

var (
	// Precision is the fixed-point scale, 1.0 == 10^18.
	Precision = uint256.NewInt(1_000_000_000_000_000_000)

	HalfPrecision = uint256.NewInt(500_000_000_000_000_000)

	// Ln2 is ln(2) scaled by Precision.
	Ln2 = uint256.NewInt(693_147_180_559_945_309)

	// DefaultVolumeWeight is the VOLUME_WEIGHTED weight (0.1) used when none is configured.
	DefaultVolumeWeight = uint256.NewInt(100_000_000_000_000_000)

	U256Max = new(uint256.Int).SetAllOne()
)
