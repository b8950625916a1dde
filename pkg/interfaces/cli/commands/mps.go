package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mherran/prodplan/pkg/application/services"
	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/domain/planning"
	"github.com/mherran/prodplan/pkg/infrastructure/logging"
	"github.com/mherran/prodplan/pkg/interfaces/cli/output"
)

// MPSOptions holds flags for the mps command.
type MPSOptions struct {
	Item             string
	Strategy         string
	Demand           string
	InitialInventory float64
	ScrapRate        float64
	SafetyStockMode  string
	SafetyStockValue float64
}

// NewMPSCommand creates the mps command: a single-item master production
// schedule from flags.
func NewMPSCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MPSOptions{}

	cmd := &cobra.Command{
		Use:   "mps",
		Short: "Compute a single-item master production schedule",
		Long: `Compute a level or chase master production schedule for one item.

Example:
  prodplan mps --strategy level --demand 800,1000,700,700 --scrap 0.05 \
    --safety-stock-mode percent_terminal --safety-stock-value 0.0715`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMPS(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Item, "item", "ITEM", "item identifier for the output")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "level", "production strategy (level|chase)")
	cmd.Flags().StringVar(&opts.Demand, "demand", "", "comma-separated demand per period (required)")
	cmd.Flags().Float64Var(&opts.InitialInventory, "initial-inventory", 0, "on-hand inventory at the start of period 1")
	cmd.Flags().Float64Var(&opts.ScrapRate, "scrap", 0, "scrap rate in [0,1)")
	cmd.Flags().StringVar(&opts.SafetyStockMode, "safety-stock-mode", "absolute", "safety stock mode (absolute|percent_per_period|percent_terminal|percent_average)")
	cmd.Flags().Float64Var(&opts.SafetyStockValue, "safety-stock-value", 0, "safety stock quantity, or percentage in [0,1] for the percent modes")
	_ = cmd.MarkFlagRequired("demand")

	return cmd
}

func runMPS(cmd *cobra.Command, rootOpts *RootOptions, opts *MPSOptions) error {
	strategy, err := entities.ParsePlanStrategy(opts.Strategy)
	if err != nil {
		return err
	}
	if strategy == entities.StrategyMRP {
		return fmt.Errorf("strategy mrp is served by the mrp command")
	}

	demand, err := entities.ParseSeries(opts.Demand)
	if err != nil {
		return fmt.Errorf("demand: %w", err)
	}
	scrap, err := entities.NewScrapRate(opts.ScrapRate)
	if err != nil {
		return err
	}
	mode, err := entities.ParseSafetyStockMode(opts.SafetyStockMode)
	if err != nil {
		return err
	}

	item := &entities.Item{
		ID:               entities.ItemID(opts.Item),
		Strategy:         strategy,
		Scrap:            scrap,
		InitialInventory: decimal.NewFromFloat(opts.InitialInventory),
		SafetyStock: entities.SafetyStockSpec{
			Mode:  mode,
			Value: decimal.NewFromFloat(opts.SafetyStockValue),
		},
	}

	var observer planning.Observer
	if rootOpts.Verbose {
		observer = logging.PlanObserver(logging.Logger())
	}

	result, err := services.NewPlanningService(observer).PlanItem(item, demand)
	if err != nil {
		return err
	}
	return output.WriteItem(cmd.OutOrStdout(), result, rootOpts.Format)
}
