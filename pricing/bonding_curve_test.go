package pricing

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/tokensale-go/shared"
)

func bondingConfig() *shared.BondingCurveConfig {
	return &shared.BondingCurveConfig{
		ReserveRatio:   5000,
		InitialReserve: e18(1000),
		CurrentReserve: e18(1000),
		TotalSupply:    e18(10_000),
		CurrentSupply:  new(uint256.Int),
	}
}

func TestCalculateBondingCurvePrice(t *testing.T) {
	bc := bondingConfig()

	price, err := CalculateBondingCurvePrice(bc, new(uint256.Int))
	require.NoError(t, err)
	require.True(t, price.Sign() > 0)
	require.Equal(t, "2000000000000000000000", price.Dec())

	price, err = CalculateBondingCurvePrice(bc, e18(1000))
	require.NoError(t, err)
	require.Equal(t, "2000000000000000000", price.Dec())

	bc.CurrentSupply = e18(500)
	price, err = CalculateBondingCurvePrice(bc, e18(500))
	require.NoError(t, err)
	require.Equal(t, "2000000000000000000", price.Dec())
}

func TestCalculateBondingCurvePriceSubTokenSupply(t *testing.T) {
	bc := bondingConfig()
	bc.CurrentReserve = e18(1)

	tests := []struct {
		supply *uint256.Int
		want   string
	}{
		{supply: new(uint256.Int), want: "2000000000000000000"},
		{supply: milli(500), want: "4000000000000000000"},
		{supply: uint256.NewInt(1), want: "2000000000000000000000000000000000000"},
	}
	for _, tt := range tests {
		bc.CurrentSupply = tt.supply
		price, err := CalculateBondingCurvePrice(bc, nil)
		require.NoError(t, err)
		require.Equal(t, tt.want, price.Dec(), "supply=%s", tt.supply.Dec())
	}
}

func TestCalculateBondingCurvePriceInvalid(t *testing.T) {
	bc := bondingConfig()
	bc.CurrentReserve = new(uint256.Int)
	_, err := CalculateBondingCurvePrice(bc, new(uint256.Int))
	require.True(t, errors.Is(err, shared.ErrInvalidParameters))

	bc = bondingConfig()
	bc.ReserveRatio = 0
	_, err = CalculateBondingCurvePrice(bc, new(uint256.Int))
	require.True(t, errors.Is(err, shared.ErrInvalidParameters))

	_, err = CalculateBondingCurvePrice(nil, new(uint256.Int))
	require.True(t, errors.Is(err, shared.ErrInvalidParameters))

	bc = bondingConfig()
	bc.CurrentSupply = shared.U256Max
	_, err = CalculateBondingCurvePrice(bc, uint256.NewInt(1))
	require.True(t, errors.Is(err, shared.ErrOverflow))
}

func TestBondingCurveModel(t *testing.T) {
	cfg := configFor(shared.PricingModelBondingCurve)

	price, err := CalculatePrice(cfg, new(uint256.Int), 0)
	require.NoError(t, err)
	require.True(t, price.Eq(cfg.InitialPrice))

	// a 50% ratio doubles the price once the sold supply matches the virtual supply
	price, err = CalculatePrice(cfg, cfg.TotalSupply, 0)
	require.NoError(t, err)
	require.Equal(t, "2000000000000000000", price.Dec())

	price, err = CalculatePrice(cfg, e18(50), 0)
	require.NoError(t, err)
	requireApprox(t, milli(1500), price, uint256.NewInt(1e14))

	// a full reserve ratio is a flat price
	cfg.Parameters = []*uint256.Int{uint256.NewInt(shared.MaxBasisPoint)}
	price, err = CalculatePrice(cfg, e18(80), 0)
	require.NoError(t, err)
	requireApprox(t, cfg.InitialPrice, price, uint256.NewInt(1e14))
}
