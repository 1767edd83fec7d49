package main

import (
	"encoding/json"
	"time"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/krazyTry/tokensale-go/config"
	"github.com/krazyTry/tokensale-go/decimal_math"
	"github.com/krazyTry/tokensale-go/shared"
)

type app struct {
	configPath string
	debug      bool
	pretty     bool

	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "pricectl",
		Short:         "Quote token sale prices from a JSON sale config",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to the sale JSON config")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Development logging")
	cmd.PersistentFlags().BoolVar(&a.pretty, "pretty", true, "Pretty-print JSON output")

	cmd.AddCommand(
		a.priceCommand(),
		a.tieredCommand(),
		a.bondingCommand(),
		a.curveCommand(),
		a.infoCommand(),
		a.averageCommand(),
		a.impactCommand(),
		a.advanceCommand(),
	)
	return cmd
}

func (a *app) initLogger() error {
	var (
		log *zap.Logger
		err error
	)
	if a.debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return errors.Wrap(err, "init logger")
	}
	a.log = log.With(zap.String("cli", "pricectl"))
	return nil
}

func (a *app) loadSale() (*config.Sale, error) {
	if a.configPath == "" {
		return nil, errors.New("--config is required")
	}
	sale, err := config.LoadFile(a.configPath)
	if err != nil {
		a.log.Error("failed to load config", zap.String("path", a.configPath), zap.Error(err))
		return nil, err
	}
	a.log.Debug("loaded config",
		zap.String("path", a.configPath),
		zap.Bool("price", sale.Price != nil),
		zap.Int("tiers", len(sale.Tiers)),
		zap.Bool("bonding_curve", sale.BondingCurve != nil),
		zap.Bool("state", sale.State != nil),
	)
	return sale, nil
}

func (a *app) loadPriceConfig() (*shared.PriceConfig, error) {
	sale, err := a.loadSale()
	if err != nil {
		return nil, err
	}
	if sale.Price == nil {
		return nil, errors.Wrapf(shared.ErrInvalidInput, "%s has no price section", a.configPath)
	}
	a.log.Debug("price config",
		zap.Stringer("model", sale.Price.Model),
		zap.String("initial_price", decimal_math.FromFixed(sale.Price.InitialPrice).String()),
		zap.String("final_price", decimal_math.FromFixed(sale.Price.FinalPrice).String()),
		zap.String("total_supply", decimal_math.FromFixed(sale.Price.TotalSupply).String()),
	)
	return sale.Price, nil
}

func (a *app) write(cmd *cobra.Command, v any) error {
	var (
		out []byte
		err error
	)
	if a.pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return errors.Wrap(err, "marshal output")
	}
	_, err = cmd.OutOrStdout().Write(append(out, '\n'))
	return err
}

// fail logs err with the command context before handing it back to cobra.
func (a *app) fail(cmd *cobra.Command, err error, fields ...zap.Field) error {
	a.log.Error("command failed", append(fields, zap.String("command", cmd.Name()), zap.Error(err))...)
	return err
}

// unixNow resolves the --now flag; zero means the wall clock.
func unixNow(now int64) uint64 {
	if now <= 0 {
		return uint64(time.Now().Unix())
	}
	return uint64(now)
}

func parseAmount(flag, value string) (*uint256.Int, error) {
	v, err := decimal_math.ParseFixed(value)
	if err != nil {
		return nil, errors.WithMessagef(err, "--%s", flag)
	}
	return v, nil
}
