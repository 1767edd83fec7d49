package pricing

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/tokensale-go/shared"
)

func TestCalculatePriceImpact(t *testing.T) {
	newPrice, impact, err := CalculatePriceImpact(e18(1), e18(100), e18(1000), uint256.NewInt(5000))
	require.NoError(t, err)
	require.Equal(t, "50000000000000000", impact.Dec())
	require.Equal(t, "1050000000000000000", newPrice.Dec())

	newPrice, impact, err = CalculatePriceImpact(e18(1), new(uint256.Int), e18(1000), uint256.NewInt(5000))
	require.NoError(t, err)
	require.True(t, impact.IsZero())
	require.True(t, newPrice.Eq(e18(1)))

	_, _, err = CalculatePriceImpact(e18(1), e18(100), new(uint256.Int), uint256.NewInt(5000))
	require.True(t, errors.Is(err, shared.ErrInsufficientLiquidity))
}

func TestCalculateAveragePrice(t *testing.T) {
	cfg := linearConfig()

	avg, err := CalculateAveragePrice(cfg, new(uint256.Int), cfg.TotalSupply, 10, 0)
	require.NoError(t, err)
	require.Equal(t, "5500000000000000000", avg.Dec())

	avg, err = CalculateAveragePrice(cfg, e18(40), e18(60), 4, 0)
	require.NoError(t, err)
	require.Equal(t, "5500000000000000000", avg.Dec())

	// the last sample sits near endAmount even when the range does not divide evenly
	short := linearConfig()
	short.TotalSupply = uint256.NewInt(20)
	avg, err = CalculateAveragePrice(short, new(uint256.Int), uint256.NewInt(19), 10, 0)
	require.NoError(t, err)
	require.Equal(t, "5050000000000000000", avg.Dec())

	_, err = CalculateAveragePrice(cfg, new(uint256.Int), cfg.TotalSupply, 0, 0)
	require.True(t, errors.Is(err, shared.ErrInvalidParameters))

	_, err = CalculateAveragePrice(cfg, e18(60), e18(60), 4, 0)
	require.True(t, errors.Is(err, shared.ErrInvalidParameters))

	_, err = CalculateAveragePrice(cfg, e18(60), e18(40), 4, 0)
	require.True(t, errors.Is(err, shared.ErrInvalidParameters))

	_, err = CalculateAveragePrice(cfg, new(uint256.Int), uint256.NewInt(5), 10, 0)
	require.True(t, errors.Is(err, shared.ErrInvalidParameters))
}

func TestGetPriceInfo(t *testing.T) {
	info, err := GetPriceInfo(linearConfig(), e18(50), 0)
	require.NoError(t, err)
	require.Equal(t, "5500000000000000000", info.CurrentPrice.Dec())
	require.Equal(t, "6400000000000000000", info.NextTierPrice.Dec())
	require.Equal(t, "900000000000000000", info.PriceChange.String())
	require.Equal(t, "1636", info.ChangePercentage.String())

	info, err = GetPriceInfo(linearConfig(), e18(95), 0)
	require.NoError(t, err)
	require.True(t, info.NextTierPrice.Eq(e18(10)))

	cfg := linearConfig()
	cfg.InitialPrice, cfg.FinalPrice = e18(10), e18(1)
	info, err = GetPriceInfo(cfg, e18(50), 0)
	require.NoError(t, err)
	require.Equal(t, "-900000000000000000", info.PriceChange.String())
	require.Equal(t, "-1636", info.ChangePercentage.String())

	// a sub-10 wei initial price has a zero floor, so the curve can reach zero
	dust := linearConfig()
	dust.InitialPrice = uint256.NewInt(5)
	dust.FinalPrice = new(uint256.Int)
	dust.TotalSupply = e18(1)
	require.True(t, ValidatePriceConfig(dust))
	require.NotPanics(t, func() {
		info, err = GetPriceInfo(dust, dust.TotalSupply, 0)
	})
	require.NoError(t, err)
	require.True(t, info.CurrentPrice.IsZero())
	require.Zero(t, info.ChangePercentage.Sign())

	_, err = GetPriceInfo(nil, e18(50), 0)
	require.Error(t, err)
}

func TestCalculatePriceCurve(t *testing.T) {
	points, err := CalculatePriceCurve(linearConfig(), 5, 0)
	require.NoError(t, err)
	require.Len(t, points, 5)

	want := []string{
		"1000000000000000000",
		"3250000000000000000",
		"5500000000000000000",
		"7750000000000000000",
		"10000000000000000000",
	}
	for i, p := range points {
		require.Equal(t, want[i], p.Price.Dec(), "point %d", i)
	}
	require.True(t, points[4].TokensSold.Eq(e18(100)))

	_, err = CalculatePriceCurve(linearConfig(), 1, 0)
	require.True(t, errors.Is(err, shared.ErrInvalidParameters))
}
