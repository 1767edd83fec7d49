package u128

import (
	binary "github.com/gagliardetto/binary"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/krazyTry/tokensale-go/shared"
)

// ParseUint128 reads an unscaled base-10 integer into a little endian
// Uint128, rejecting anything wider than 128 bits.
func ParseUint128(num string) (binary.Uint128, error) {
	v, err := uint256.FromDecimal(num)
	if err != nil {
		return binary.Uint128{}, errors.Wrapf(shared.ErrInvalidInput, "parse uint128 %q: %v", num, err)
	}
	return FromUint256(v)
}

// MustParseUint128 is ParseUint128 for constants; it panics on bad input.
func MustParseUint128(num string) binary.Uint128 {
	v, err := ParseUint128(num)
	if err != nil {
		panic(err)
	}
	return v
}

// FromUint256 narrows a fixed-point value to 128 bits.
func FromUint256(v *uint256.Int) (binary.Uint128, error) {
	if v == nil {
		return *binary.NewUint128LittleEndian(), nil
	}
	if v.BitLen() > 128 {
		return binary.Uint128{}, errors.Wrapf(shared.ErrOverflow, "%s overflows Uint128", v.Dec())
	}
	out := binary.NewUint128LittleEndian()
	out.Lo = v[0]
	out.Hi = v[1]
	return *out, nil
}

func ToUint256(v binary.Uint128) *uint256.Int {
	return &uint256.Int{v.Lo, v.Hi, 0, 0}
}
