package decimal_math

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/tokensale-go/shared"
)

func TestFromFixed(t *testing.T) {
	require.Equal(t, "5.5", FromFixed(uint256.NewInt(5_500_000_000_000_000_000)).String())
	require.Equal(t, "0.000000000000000001", FromFixed(uint256.NewInt(1)).String())
	require.True(t, FromFixed(nil).IsZero())
}

func TestToFixed(t *testing.T) {
	v, err := ToFixed(decimal.RequireFromString("1.25"))
	require.NoError(t, err)
	require.Equal(t, "1250000000000000000", v.Dec())

	_, err = ToFixed(decimal.RequireFromString("-1"))
	require.True(t, errors.Is(err, shared.ErrNegativeResult))

	_, err = ToFixed(decimal.RequireFromString("0.0000000000000000001"))
	require.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = ToFixed(decimal.New(1, 60))
	require.True(t, errors.Is(err, shared.ErrOverflow))
}

func TestParseFixedRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "0.1", "5.5", "10000", "123456789.123456789012345678"} {
		v, err := ParseFixed(s)
		require.NoError(t, err, s)
		require.True(t, FromFixed(v).Equal(decimal.RequireFromString(s)), s)
	}

	_, err := ParseFixed("one")
	require.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "5.50", FormatFixed(uint256.NewInt(5_500_000_000_000_000_000), 2))
	require.Equal(t, "0.693147", FormatFixed(shared.Ln2, 6))

	require.Equal(t, "16.36%", FormatBasisPoints(big.NewInt(1636)))
	require.Equal(t, "-16.36%", FormatBasisPoints(big.NewInt(-1636)))
	require.Equal(t, "0%", FormatBasisPoints(nil))
}
