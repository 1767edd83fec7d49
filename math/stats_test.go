package math

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/tokensale-go/shared"
)

func ints(vs ...uint64) []*uint256.Int {
	out := make([]*uint256.Int, len(vs))
	for i, v := range vs {
		out[i] = uint256.NewInt(v)
	}
	return out
}

func TestMinMaxAverage(t *testing.T) {
	values := ints(7, 3, 9, 1, 5)

	got, err := Min(values)
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.Uint64())

	got, err = Max(values)
	require.NoError(t, err)
	require.Equal(t, uint64(9), got.Uint64())

	got, err = Average(values)
	require.NoError(t, err)
	require.Equal(t, uint64(5), got.Uint64())

	for _, fn := range []func([]*uint256.Int) (*uint256.Int, error){Min, Max, Average, Median} {
		_, err := fn(nil)
		require.True(t, errors.Is(err, shared.ErrInvalidInput))
	}

	_, err = Average([]*uint256.Int{shared.U256Max, uint256.NewInt(1)})
	require.True(t, errors.Is(err, shared.ErrOverflow))
}

func TestMedian(t *testing.T) {
	values := ints(9, 1, 5)
	got, err := Median(values)
	require.NoError(t, err)
	require.Equal(t, uint64(5), got.Uint64())
	require.Equal(t, uint64(9), values[0].Uint64(), "input must not be reordered")

	got, err = Median(ints(4, 1, 3, 10))
	require.NoError(t, err)
	require.Equal(t, uint64(3), got.Uint64())

	got, err = Median(ints(3, 5))
	require.NoError(t, err)
	require.Equal(t, uint64(4), got.Uint64())

	got, err = Median([]*uint256.Int{shared.U256Max, shared.U256Max})
	require.NoError(t, err)
	require.True(t, got.Eq(shared.U256Max))
}

func TestWeightedAverage(t *testing.T) {
	got, err := WeightedAverage([]*uint256.Int{e18(1), e18(2)}, ints(3, 1))
	require.NoError(t, err)
	require.Equal(t, "1250000000000000000", got.Dec())

	_, err = WeightedAverage(ints(1, 2), ints(1))
	require.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = WeightedAverage(nil, nil)
	require.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = WeightedAverage(ints(1, 2), ints(0, 0))
	require.True(t, errors.Is(err, shared.ErrDivisionByZero))
}
