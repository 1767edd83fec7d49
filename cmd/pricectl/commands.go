package main

import (
	"encoding/hex"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/krazyTry/tokensale-go/decimal_math"
	"github.com/krazyTry/tokensale-go/pricing"
	"github.com/krazyTry/tokensale-go/shared"
	"github.com/krazyTry/tokensale-go/state"
)

const displayPlaces = 6

type quote struct {
	Model      string `json:"model,omitempty"`
	TokensSold string `json:"tokensSold,omitempty"`
	Price      string `json:"price"`
	PriceRaw   string `json:"priceRaw"`
	Tier       *int   `json:"tier,omitempty"`
}

func newQuote(sold, price *uint256.Int) quote {
	q := quote{
		Price:    decimal_math.FormatFixed(price, displayPlaces),
		PriceRaw: price.Dec(),
	}
	if sold != nil {
		q.TokensSold = decimal_math.FromFixed(sold).String()
	}
	return q
}

func (a *app) priceCommand() *cobra.Command {
	var (
		sold string
		now  int64
	)
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Quote the curve price after a number of tokens sold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadPriceConfig()
			if err != nil {
				return err
			}
			tokensSold, err := parseAmount("sold", sold)
			if err != nil {
				return err
			}
			price, err := pricing.CalculatePrice(cfg, tokensSold, unixNow(now))
			if err != nil {
				return a.fail(cmd, err, zap.String("sold", sold))
			}
			q := newQuote(tokensSold, price)
			q.Model = cfg.Model.String()
			return a.write(cmd, q)
		},
	}
	cmd.Flags().StringVar(&sold, "sold", "0", "Tokens sold so far")
	cmd.Flags().Int64Var(&now, "now", 0, "Unix time to quote at (default: now)")
	return cmd
}

func (a *app) tieredCommand() *cobra.Command {
	var sold string
	cmd := &cobra.Command{
		Use:   "tiered",
		Short: "Quote the tier price after a number of tokens sold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sale, err := a.loadSale()
			if err != nil {
				return err
			}
			tokensSold, err := parseAmount("sold", sold)
			if err != nil {
				return err
			}
			if err := pricing.ValidateTiers(sale.Tiers); err != nil {
				a.log.Warn("tier list failed validation", zap.Error(err))
			}
			price, index, err := pricing.CalculateTieredPrice(sale.Tiers, tokensSold)
			if err != nil {
				return a.fail(cmd, err, zap.String("sold", sold))
			}
			q := newQuote(tokensSold, price)
			q.Tier = &index
			return a.write(cmd, q)
		},
	}
	cmd.Flags().StringVar(&sold, "sold", "0", "Tokens sold so far")
	return cmd
}

func (a *app) bondingCommand() *cobra.Command {
	var purchase string
	cmd := &cobra.Command{
		Use:   "bonding",
		Short: "Quote the bonding curve spot price for a purchase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sale, err := a.loadSale()
			if err != nil {
				return err
			}
			amount, err := parseAmount("purchase", purchase)
			if err != nil {
				return err
			}
			price, err := pricing.CalculateBondingCurvePrice(sale.BondingCurve, amount)
			if err != nil {
				return a.fail(cmd, err, zap.String("purchase", purchase))
			}
			return a.write(cmd, newQuote(nil, price))
		},
	}
	cmd.Flags().StringVar(&purchase, "purchase", "0", "Tokens about to be bought")
	return cmd
}

func (a *app) curveCommand() *cobra.Command {
	var (
		points int
		now    int64
	)
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Sample the price curve from zero to the total supply",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadPriceConfig()
			if err != nil {
				return err
			}
			curve, err := pricing.CalculatePriceCurve(cfg, points, unixNow(now))
			if err != nil {
				return a.fail(cmd, err, zap.Int("points", points))
			}
			out := make([]quote, 0, len(curve))
			for _, p := range curve {
				out = append(out, newQuote(p.TokensSold, p.Price))
			}
			return a.write(cmd, out)
		},
	}
	cmd.Flags().IntVar(&points, "points", 11, "Number of samples")
	cmd.Flags().Int64Var(&now, "now", 0, "Unix time to quote at (default: now)")
	return cmd
}

func (a *app) infoCommand() *cobra.Command {
	var (
		sold string
		now  int64
	)
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the current price and the price one tenth of the supply later",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadPriceConfig()
			if err != nil {
				return err
			}
			tokensSold, err := parseAmount("sold", sold)
			if err != nil {
				return err
			}
			info, err := pricing.GetPriceInfo(cfg, tokensSold, unixNow(now))
			if err != nil {
				return a.fail(cmd, err, zap.String("sold", sold))
			}
			return a.write(cmd, map[string]string{
				"model":            cfg.Model.String(),
				"currentPrice":     decimal_math.FormatFixed(info.CurrentPrice, displayPlaces),
				"nextTierPrice":    decimal_math.FormatFixed(info.NextTierPrice, displayPlaces),
				"priceChangeRaw":   info.PriceChange.String(),
				"changePercentage": decimal_math.FormatBasisPoints(info.ChangePercentage),
			})
		},
	}
	cmd.Flags().StringVar(&sold, "sold", "0", "Tokens sold so far")
	cmd.Flags().Int64Var(&now, "now", 0, "Unix time to quote at (default: now)")
	return cmd
}

func (a *app) averageCommand() *cobra.Command {
	var (
		from, to string
		steps    uint64
		now      int64
	)
	cmd := &cobra.Command{
		Use:   "average",
		Short: "Average curve price across a range of tokens sold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadPriceConfig()
			if err != nil {
				return err
			}
			start, err := parseAmount("from", from)
			if err != nil {
				return err
			}
			end, err := parseAmount("to", to)
			if err != nil {
				return err
			}
			avg, err := pricing.CalculateAveragePrice(cfg, start, end, steps, unixNow(now))
			if err != nil {
				return a.fail(cmd, err, zap.String("from", from), zap.String("to", to), zap.Uint64("steps", steps))
			}
			q := newQuote(nil, avg)
			q.Model = cfg.Model.String()
			return a.write(cmd, q)
		},
	}
	cmd.Flags().StringVar(&from, "from", "0", "Start of the sold range")
	cmd.Flags().StringVar(&to, "to", "", "End of the sold range")
	cmd.Flags().Uint64Var(&steps, "steps", 100, "Integration steps")
	cmd.Flags().Int64Var(&now, "now", 0, "Unix time to quote at (default: now)")
	return cmd
}

func (a *app) impactCommand() *cobra.Command {
	var (
		price, amount, liquidity string
		factorBps                uint64
	)
	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Estimate the price impact of a purchase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := parseAmount("price", price)
			if err != nil {
				return err
			}
			purchase, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			pool, err := parseAmount("liquidity", liquidity)
			if err != nil {
				return err
			}
			newPrice, impact, err := pricing.CalculatePriceImpact(current, purchase, pool, uint256.NewInt(factorBps))
			if err != nil {
				return a.fail(cmd, err, zap.String("liquidity", liquidity))
			}
			return a.write(cmd, map[string]string{
				"newPrice": decimal_math.FormatFixed(newPrice, displayPlaces),
				"impact":   decimal_math.FormatFixed(impact, displayPlaces),
			})
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "Current price")
	cmd.Flags().StringVar(&amount, "amount", "", "Purchase amount")
	cmd.Flags().StringVar(&liquidity, "liquidity", "", "Total liquidity")
	cmd.Flags().Uint64Var(&factorBps, "factor", 10_000, "Impact factor in basis points")
	return cmd
}

type advanced struct {
	quote
	UpdatedAt int64  `json:"updatedAt"`
	Account   string `json:"account"`
}

func (a *app) advanceCommand() *cobra.Command {
	var (
		purchase string
		now      int64
		fresh    bool
	)
	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Record a purchase against the sale state and print the encoded account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sale, err := a.loadSale()
			if err != nil {
				return err
			}
			if sale.Price == nil {
				return errors.Wrapf(shared.ErrInvalidInput, "%s has no price section", a.configPath)
			}
			amount, err := parseAmount("purchase", purchase)
			if err != nil {
				return err
			}
			at := unixNow(now)

			var current state.SaleState
			if sale.State != nil && !fresh {
				current = *sale.State
			} else if current, err = state.NewSaleState(sale.Price, at); err != nil {
				return a.fail(cmd, err)
			}
			next, err := current.Advance(sale.Price, amount, at)
			if err != nil {
				return a.fail(cmd, err,
					zap.String("purchase", purchase),
					zap.String("sold", current.Sold().Dec()),
					zap.Int64("updated_at", current.UpdatedAt),
				)
			}
			account, err := next.MarshalBorsh()
			if err != nil {
				return a.fail(cmd, err)
			}
			a.log.Debug("advanced sale state",
				zap.String("from", current.Sold().Dec()),
				zap.String("to", next.Sold().Dec()),
			)
			return a.write(cmd, advanced{
				quote:     newQuote(next.Sold(), next.Price()),
				UpdatedAt: next.UpdatedAt,
				Account:   hex.EncodeToString(account),
			})
		},
	}
	cmd.Flags().StringVar(&purchase, "purchase", "", "Tokens bought")
	cmd.Flags().Int64Var(&now, "now", 0, "Unix time of the purchase (default: now)")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore the config state and start from price.currentSupply")
	return cmd
}
