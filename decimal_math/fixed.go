package decimal_math

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/krazyTry/tokensale-go/shared"
)

// FromFixed converts a 10^18 fixed-point value to its human decimal form.
func FromFixed(v *uint256.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v.ToBig(), -shared.Decimals)
}

// ToFixed scales d by 10^18. Negative values, values finer than 10^-18 and
// values that do not fit in 256 bits are rejected.
func ToFixed(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, errors.Wrapf(shared.ErrNegativeResult, "decimal %s", d.String())
	}
	scaled := d.Shift(shared.Decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "decimal %s has more than %d places", d.String(), shared.Decimals)
	}
	v, overflow := uint256.FromBig(scaled.BigInt())
	if overflow {
		return nil, errors.Wrapf(shared.ErrOverflow, "decimal %s", d.String())
	}
	return v, nil
}

// ParseFixed parses a human decimal string such as "1.25" into fixed point.
func ParseFixed(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "parse %q: %v", s, err)
	}
	return ToFixed(d)
}

// FormatFixed renders v with exactly places digits after the point.
func FormatFixed(v *uint256.Int, places int32) string {
	return FromFixed(v).StringFixed(places)
}

// FormatBasisPoints renders a signed basis point amount as a percentage,
// e.g. 1636 -> "16.36%".
func FormatBasisPoints(bps *big.Int) string {
	if bps == nil {
		return "0%"
	}
	return decimal.NewFromBigInt(bps, -2).StringFixed(2) + "%"
}
