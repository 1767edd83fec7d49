// Package config loads sale pricing documents from JSON.
//
// Amounts are written in whole-token units as decimal strings or JSON numbers
// ("1.5" is 1.5 * 10^18). A "raw:" prefix passes an already scaled integer
// through unchanged, which is how basis point parameters such as a bonding
// curve's reserve ratio are given:
//
//	{
//	  "price": {
//	    "model": "bonding_curve",
//	    "initialPrice": "0.01",
//	    "finalPrice": "0.05",
//	    "totalSupply": "1000000",
//	    "parameters": ["raw:5000"]
//	  },
//	  "tiers": [{"threshold": "100000", "price": "0.01", "type": "fixed", "active": true}],
//	  "bondingCurve": {"reserveRatio": 5000, "initialReserve": "1000", "currentReserve": "1000", "totalSupply": "10000"},
//	  "state": {"tokensSold": "2500", "lastPrice": "raw:10025000000000000", "updatedAt": 1700000000}
//	}
//
// State amounts must fit in 128 bits.
package config

import (
	"os"
	"strconv"
	"strings"

	binary "github.com/gagliardetto/binary"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/krazyTry/tokensale-go/decimal_math"
	"github.com/krazyTry/tokensale-go/shared"
	"github.com/krazyTry/tokensale-go/state"
	"github.com/krazyTry/tokensale-go/u128"
)

const rawPrefix = "raw:"

// Sale is a full pricing document. Sections that are absent stay nil.
type Sale struct {
	Price        *shared.PriceConfig
	Tiers        []shared.PriceTier
	BondingCurve *shared.BondingCurveConfig
	State        *state.SaleState
}

func LoadFile(path string) (*Sale, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	sale, err := Load(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "config %s", path)
	}
	return sale, nil
}

func Load(data []byte) (*Sale, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(shared.ErrInvalidInput, "malformed JSON")
	}
	doc := gjson.ParseBytes(data)
	sale := &Sale{}
	var err error
	if v := doc.Get("price"); v.Exists() {
		if sale.Price, err = priceConfig(v, "price"); err != nil {
			return nil, err
		}
	}
	if v := doc.Get("tiers"); v.Exists() {
		if sale.Tiers, err = tiers(v, "tiers"); err != nil {
			return nil, err
		}
	}
	if v := doc.Get("bondingCurve"); v.Exists() {
		if sale.BondingCurve, err = bondingCurve(v, "bondingCurve"); err != nil {
			return nil, err
		}
	}
	if v := doc.Get("state"); v.Exists() {
		if sale.State, err = saleState(v, "state"); err != nil {
			return nil, err
		}
	}
	if sale.Price == nil && sale.Tiers == nil && sale.BondingCurve == nil && sale.State == nil {
		return nil, errors.Wrap(shared.ErrInvalidInput, "no price, tiers, bondingCurve or state section")
	}
	return sale, nil
}

// ParsePriceConfig reads a single price config object.
func ParsePriceConfig(data []byte) (*shared.PriceConfig, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(shared.ErrInvalidInput, "malformed JSON")
	}
	return priceConfig(gjson.ParseBytes(data), "$")
}

// ParseTiers reads a JSON array of tiers.
func ParseTiers(data []byte) ([]shared.PriceTier, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(shared.ErrInvalidInput, "malformed JSON")
	}
	return tiers(gjson.ParseBytes(data), "$")
}

func ParseBondingCurve(data []byte) (*shared.BondingCurveConfig, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(shared.ErrInvalidInput, "malformed JSON")
	}
	return bondingCurve(gjson.ParseBytes(data), "$")
}

func priceConfig(v gjson.Result, path string) (*shared.PriceConfig, error) {
	if !v.IsObject() {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "%s: expected object", path)
	}
	model, err := shared.ParsePricingModel(v.Get("model").String())
	if err != nil {
		return nil, errors.WithMessagef(err, "%s.model", path)
	}
	cfg := &shared.PriceConfig{
		Model:     model,
		StartTime: v.Get("startTime").Uint(),
		EndTime:   v.Get("endTime").Uint(),
	}
	if cfg.InitialPrice, err = requiredAmount(v, path, "initialPrice"); err != nil {
		return nil, err
	}
	if cfg.FinalPrice, err = requiredAmount(v, path, "finalPrice"); err != nil {
		return nil, err
	}
	if cfg.TotalSupply, err = requiredAmount(v, path, "totalSupply"); err != nil {
		return nil, err
	}
	if cfg.CurrentSupply, err = optionalAmount(v, path, "currentSupply"); err != nil {
		return nil, err
	}
	for i, p := range v.Get("parameters").Array() {
		param, err := amount(p, path+".parameters."+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		cfg.Parameters = append(cfg.Parameters, param)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "%s", path)
	}
	return cfg, nil
}

func tiers(v gjson.Result, path string) ([]shared.PriceTier, error) {
	if !v.IsArray() {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "%s: expected array", path)
	}
	items := v.Array()
	out := make([]shared.PriceTier, 0, len(items))
	for i, item := range items {
		p := path + "." + strconv.Itoa(i)
		tierType, err := shared.ParseTierType(item.Get("type").String())
		if err != nil {
			return nil, errors.WithMessagef(err, "%s.type", p)
		}
		tier := shared.PriceTier{TierType: tierType, IsActive: true}
		if active := item.Get("active"); active.Exists() {
			tier.IsActive = active.Bool()
		}
		if tier.Threshold, err = requiredAmount(item, p, "threshold"); err != nil {
			return nil, err
		}
		if tier.Price, err = requiredAmount(item, p, "price"); err != nil {
			return nil, err
		}
		// percentage increases are whole percents, not token amounts
		if tierType == shared.TierTypePercentageIncrease {
			tier.PriceIncrease, err = integer(item.Get("priceIncrease"), p+".priceIncrease")
		} else {
			tier.PriceIncrease, err = optionalAmount(item, p, "priceIncrease")
		}
		if err != nil {
			return nil, err
		}
		out = append(out, tier)
	}
	return out, nil
}

func bondingCurve(v gjson.Result, path string) (*shared.BondingCurveConfig, error) {
	if !v.IsObject() {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "%s: expected object", path)
	}
	bc := &shared.BondingCurveConfig{ReserveRatio: v.Get("reserveRatio").Uint()}
	if bc.ReserveRatio == 0 || bc.ReserveRatio > shared.MaxBasisPoint {
		return nil, errors.Wrapf(shared.ErrInvalidParameters, "%s.reserveRatio: %d out of (0, %d]", path, bc.ReserveRatio, shared.MaxBasisPoint)
	}
	var err error
	if bc.InitialReserve, err = optionalAmount(v, path, "initialReserve"); err != nil {
		return nil, err
	}
	if bc.CurrentReserve, err = requiredAmount(v, path, "currentReserve"); err != nil {
		return nil, err
	}
	if bc.TotalSupply, err = optionalAmount(v, path, "totalSupply"); err != nil {
		return nil, err
	}
	if bc.CurrentSupply, err = optionalAmount(v, path, "currentSupply"); err != nil {
		return nil, err
	}
	return bc, nil
}

func saleState(v gjson.Result, path string) (*state.SaleState, error) {
	if !v.IsObject() {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "%s: expected object", path)
	}
	s := &state.SaleState{UpdatedAt: v.Get("updatedAt").Int()}
	if s.UpdatedAt < 0 {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "%s.updatedAt: negative", path)
	}
	var err error
	if s.TokensSold, err = uint128Amount(v, path, "tokensSold"); err != nil {
		return nil, err
	}
	if s.LastPrice, err = uint128Amount(v, path, "lastPrice"); err != nil {
		return nil, err
	}
	return s, nil
}

// uint128Amount reads an amount into its 128-bit wire form. Missing is zero.
func uint128Amount(obj gjson.Result, path, key string) (binary.Uint128, error) {
	v := obj.Get(key)
	p := path + "." + key
	if v.Type == gjson.String {
		if raw, ok := strings.CutPrefix(strings.TrimSpace(v.Str), rawPrefix); ok {
			out, err := u128.ParseUint128(raw)
			if err != nil {
				return binary.Uint128{}, errors.WithMessagef(err, "%s", p)
			}
			return out, nil
		}
	}
	n, err := optionalAmount(obj, path, key)
	if err != nil {
		return binary.Uint128{}, err
	}
	out, err := u128.FromUint256(n)
	if err != nil {
		return binary.Uint128{}, errors.WithMessagef(err, "%s", p)
	}
	return out, nil
}

func requiredAmount(obj gjson.Result, path, key string) (*uint256.Int, error) {
	v := obj.Get(key)
	if !v.Exists() {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "%s.%s: missing", path, key)
	}
	return amount(v, path+"."+key)
}

func optionalAmount(obj gjson.Result, path, key string) (*uint256.Int, error) {
	v := obj.Get(key)
	if !v.Exists() {
		return new(uint256.Int), nil
	}
	return amount(v, path+"."+key)
}

// amount converts a token amount to fixed point, honouring the raw prefix.
func amount(v gjson.Result, path string) (*uint256.Int, error) {
	switch v.Type {
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if raw, ok := strings.CutPrefix(s, rawPrefix); ok {
			n, err := uint256.FromDecimal(raw)
			if err != nil {
				return nil, errors.Wrapf(shared.ErrInvalidInput, "%s: raw value %q: %v", path, raw, err)
			}
			return n, nil
		}
		n, err := decimal_math.ParseFixed(s)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s", path)
		}
		return n, nil
	case gjson.Number:
		d, err := decimal.NewFromString(v.Raw)
		if err != nil {
			return nil, errors.Wrapf(shared.ErrInvalidInput, "%s: %v", path, err)
		}
		n, err := decimal_math.ToFixed(d)
		if err != nil {
			return nil, errors.WithMessagef(err, "%s", path)
		}
		return n, nil
	default:
		return nil, errors.Wrapf(shared.ErrInvalidInput, "%s: expected number or string, got %s", path, v.Type)
	}
}

// integer reads an unscaled non-negative integer. A missing value is zero.
func integer(v gjson.Result, path string) (*uint256.Int, error) {
	if !v.Exists() {
		return new(uint256.Int), nil
	}
	s := strings.TrimPrefix(strings.TrimSpace(v.String()), rawPrefix)
	n, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "%s: integer %q: %v", path, s, err)
	}
	return n, nil
}
