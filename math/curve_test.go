package math

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/tokensale-go/shared"
)

func TestDynamicPrice(t *testing.T) {
	got, err := DynamicPrice(e18(1), e18(10), e18(50), e18(100))
	require.NoError(t, err)
	require.Equal(t, "5500000000000000000", got.Dec())

	got, err = DynamicPrice(e18(10), e18(1), e18(50), e18(100))
	require.NoError(t, err)
	require.Equal(t, "5500000000000000000", got.Dec())

	got, err = DynamicPrice(e18(1), e18(10), new(uint256.Int), e18(100))
	require.NoError(t, err)
	require.True(t, got.Eq(e18(1)))

	got, err = DynamicPrice(e18(1), e18(10), e18(100), e18(100))
	require.NoError(t, err)
	require.True(t, got.Eq(e18(10)))

	_, err = DynamicPrice(e18(1), e18(10), e18(1), new(uint256.Int))
	require.True(t, errors.Is(err, shared.ErrDivisionByZero))

	// extrapolating below zero
	_, err = DynamicPrice(e18(10), e18(1), e18(300), e18(100))
	require.True(t, errors.Is(err, shared.ErrNegativeResult))
}

func TestExponentialPrice(t *testing.T) {
	got, err := ExponentialPrice(e18(1), e18(1), e18(100), e18(100))
	require.NoError(t, err)
	require.Equal(t, "2500000000000000000", got.Dec())

	got, err = ExponentialPrice(e18(2), e18(1), new(uint256.Int), e18(100))
	require.NoError(t, err)
	require.True(t, got.Eq(e18(2)))

	// r*x = 0.5 -> 1 + 0.5 + 0.125
	got, err = ExponentialPrice(e18(1), e18(1), e18(50), e18(100))
	require.NoError(t, err)
	require.Equal(t, "1625000000000000000", got.Dec())
}

func TestLogarithmicPrice(t *testing.T) {
	got, err := LogarithmicPrice(e18(1), e18(10), new(uint256.Int), e18(100))
	require.NoError(t, err)
	require.True(t, got.Eq(e18(1)))

	got, err = LogarithmicPrice(e18(1), e18(10), e18(100), e18(100))
	require.NoError(t, err)
	require.True(t, got.Eq(e18(10)))

	// ln(1.5)/ln(2) = 0.58496
	got, err = LogarithmicPrice(e18(1), e18(10), e18(50), e18(100))
	require.NoError(t, err)
	requireApprox(t, uint256.MustFromDecimal("6264662506490406000"), got, uint256.MustFromDecimal("2000000000000000"), "log midpoint")
}
