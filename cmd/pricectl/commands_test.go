package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/krazyTry/tokensale-go/shared"
	"github.com/krazyTry/tokensale-go/state"
)

const saleDoc = `{
  "price": {"model": "linear", "initialPrice": "1", "finalPrice": "10", "totalSupply": "100"},
  "tiers": [
    {"threshold": "100", "price": "1", "type": "fixed"},
    {"threshold": "200", "price": "2", "type": "fixed"},
    {"threshold": "500", "price": "3", "type": "fixed"}
  ],
  "bondingCurve": {"reserveRatio": 5000, "initialReserve": "1000", "currentReserve": "1000", "totalSupply": "10000"},
  "state": {"tokensSold": "40", "lastPrice": "raw:4600000000000000000", "updatedAt": 1700000000}
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sale.json")
	require.NoError(t, os.WriteFile(path, []byte(saleDoc), 0o600))

	cmd := newRootCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append(args, "--config", path, "--pretty=false"))
	err := cmd.Execute()
	return out.String(), err
}

func TestPriceCommand(t *testing.T) {
	out, err := run(t, "price", "--sold", "50")
	require.NoError(t, err)
	require.Equal(t, "LINEAR", gjson.Get(out, "model").String())
	require.Equal(t, "5.500000", gjson.Get(out, "price").String())
	require.Equal(t, "5500000000000000000", gjson.Get(out, "priceRaw").String())
	require.Equal(t, "50", gjson.Get(out, "tokensSold").String())
}

func TestTieredCommand(t *testing.T) {
	out, err := run(t, "tiered", "--sold", "150")
	require.NoError(t, err)
	require.Equal(t, int64(1), gjson.Get(out, "tier").Int())
	require.Equal(t, "2.000000", gjson.Get(out, "price").String())
}

func TestBondingCommand(t *testing.T) {
	out, err := run(t, "bonding", "--purchase", "1000")
	require.NoError(t, err)
	require.Equal(t, "2.000000", gjson.Get(out, "price").String())
}

func TestCurveCommand(t *testing.T) {
	out, err := run(t, "curve", "--points", "3")
	require.NoError(t, err)
	prices := gjson.Get(out, "#.price").Array()
	require.Len(t, prices, 3)
	require.Equal(t, "1.000000", prices[0].String())
	require.Equal(t, "5.500000", prices[1].String())
	require.Equal(t, "10.000000", prices[2].String())
}

func TestInfoCommand(t *testing.T) {
	out, err := run(t, "info", "--sold", "50")
	require.NoError(t, err)
	require.Equal(t, "6.400000", gjson.Get(out, "nextTierPrice").String())
	require.Equal(t, "16.36%", gjson.Get(out, "changePercentage").String())
}

func TestAverageAndImpactCommands(t *testing.T) {
	out, err := run(t, "average", "--from", "0", "--to", "100", "--steps", "10")
	require.NoError(t, err)
	require.Equal(t, "5.500000", gjson.Get(out, "price").String())

	out, err = run(t, "impact", "--price", "1", "--amount", "100", "--liquidity", "1000", "--factor", "5000")
	require.NoError(t, err)
	require.Equal(t, "1.050000", gjson.Get(out, "newPrice").String())

	_, err = run(t, "impact", "--price", "1", "--amount", "100", "--liquidity", "0")
	require.True(t, errors.Is(err, shared.ErrInsufficientLiquidity))
}

func TestAdvanceCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		sold  string
		price string
	}{
		{name: "from config state", args: []string{"--purchase", "10"}, sold: "50", price: "5500000000000000000"},
		{name: "fresh", args: []string{"--purchase", "10", "--fresh"}, sold: "10", price: "1900000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"advance", "--now", "1700000100"}, tt.args...)...)
			require.NoError(t, err)
			require.Equal(t, tt.sold, gjson.Get(out, "tokensSold").String())
			require.Equal(t, tt.price, gjson.Get(out, "priceRaw").String())
			require.Equal(t, int64(1700000100), gjson.Get(out, "updatedAt").Int())

			account, err := hex.DecodeString(gjson.Get(out, "account").String())
			require.NoError(t, err)
			require.Len(t, account, 48)
			decoded, err := state.UnmarshalBorsh(account)
			require.NoError(t, err)
			require.Equal(t, tt.price, decoded.Price().Dec())
			require.Equal(t, int64(1700000100), decoded.UpdatedAt)
		})
	}

	_, err := run(t, "advance", "--purchase", "10", "--now", "1699999999")
	require.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = run(t, "advance", "--purchase", "61", "--now", "1700000100")
	require.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestCommandErrors(t *testing.T) {
	_, err := run(t, "price", "--sold", "abc")
	require.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = run(t, "price", "--sold", "20000")
	require.True(t, errors.Is(err, shared.ErrPriceExceedsLimit))

	cmd := newRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"price"})
	require.Error(t, cmd.Execute())
}
