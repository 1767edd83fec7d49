package tokensale

import (
	"github.com/krazyTry/tokensale-go/config"
	"github.com/krazyTry/tokensale-go/pricing"
	"github.com/krazyTry/tokensale-go/state"
)

// CalculatePrice quotes a sale curve.
//
// Example:
//
// sale, _ := LoadConfig("sale.json")
//
// price, _ := CalculatePrice(sale.Price, tokensSold, uint64(time.Now().Unix()))
var CalculatePrice = pricing.CalculatePrice

// CalculateTieredPrice returns the price and index of the tier covering tokensSold.
//
// Example:
//
// price, tier, _ := CalculateTieredPrice(sale.Tiers, tokensSold)
var CalculateTieredPrice = pricing.CalculateTieredPrice

var CalculateBondingCurvePrice = pricing.CalculateBondingCurvePrice

var GetPriceInfo = pricing.GetPriceInfo

// LoadConfig reads a JSON sale document with price, tiers and bondingCurve sections.
var LoadConfig = config.LoadFile

// NewSaleState opens a sale snapshot at the config's current supply.
//
// Example:
//
// s, _ := NewSaleState(sale.Price, now)
//
// s, err = s.Advance(sale.Price, purchased, now)
//
// data, _ := s.MarshalBorsh()
var NewSaleState = state.NewSaleState
