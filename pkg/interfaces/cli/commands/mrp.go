package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mherran/prodplan/pkg/application/dto"
	"github.com/mherran/prodplan/pkg/domain/entities"
	"github.com/mherran/prodplan/pkg/domain/planning"
	"github.com/mherran/prodplan/pkg/infrastructure/logging"
	"github.com/mherran/prodplan/pkg/interfaces/cli/output"
)

// MRPOptions holds flags for the mrp command.
type MRPOptions struct {
	Item              string
	Gross             string
	ScheduledReceipts string
	InitialInventory  float64
	SafetyStock       float64
	LeadTime          int
	Policy            string
	LotParam          float64
	StrictReceipts    bool
}

// NewMRPCommand creates the mrp command: a single-item time-phased netting
// run from flags.
func NewMRPCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MRPOptions{}

	cmd := &cobra.Command{
		Use:   "mrp",
		Short: "Compute a single-item MRP netting table",
		Long: `Net gross requirements against inventory and scheduled receipts,
offset planned order releases by the lead time, and size orders with the
selected lot policy.

Example:
  prodplan mrp --gross 800,1200,900,1100 --initial-inventory 300 \
    --safety-stock 100 --receipts 500,0,0,250 --lead-time 1 --policy LFL --lot-param 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMRP(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Item, "item", "ITEM", "item identifier for the output")
	cmd.Flags().StringVar(&opts.Gross, "gross", "", "comma-separated gross requirements per period (required)")
	cmd.Flags().StringVar(&opts.ScheduledReceipts, "receipts", "", "comma-separated scheduled receipts per period")
	cmd.Flags().Float64Var(&opts.InitialInventory, "initial-inventory", 0, "projected available balance before period 1")
	cmd.Flags().Float64Var(&opts.SafetyStock, "safety-stock", 0, "absolute safety stock floor")
	cmd.Flags().IntVar(&opts.LeadTime, "lead-time", 0, "periods between order release and receipt")
	cmd.Flags().StringVar(&opts.Policy, "policy", "LFL", "lot sizing policy (LFL|FOQ)")
	cmd.Flags().Float64Var(&opts.LotParam, "lot-param", 0, "minimum quantity for LFL, lot size for FOQ")
	cmd.Flags().BoolVar(&opts.StrictReceipts, "strict-receipts", false, "reject a receipts series whose length differs from the horizon instead of zero-padding/truncating")
	_ = cmd.MarkFlagRequired("gross")

	return cmd
}

func runMRP(cmd *cobra.Command, rootOpts *RootOptions, opts *MRPOptions) error {
	gross, err := entities.ParseSeries(opts.Gross)
	if err != nil {
		return fmt.Errorf("gross requirements: %w", err)
	}
	receipts, err := entities.ParseSeries(opts.ScheduledReceipts)
	if err != nil {
		return fmt.Errorf("scheduled receipts: %w", err)
	}
	policy, err := entities.ParseLotPolicy(opts.Policy, decimal.NewFromFloat(opts.LotParam))
	if err != nil {
		return err
	}

	align := entities.AlignPad
	if opts.StrictReceipts {
		align = entities.AlignStrict
	}

	var observer planning.Observer
	if rootOpts.Verbose {
		observer = logging.PlanObserver(logging.Logger())
	}

	result, err := planning.MRPPlan(planning.MRPInput{
		GrossRequirements: gross,
		InitialInventory:  decimal.NewFromFloat(opts.InitialInventory),
		SafetyStock:       decimal.NewFromFloat(opts.SafetyStock),
		ScheduledReceipts: receipts,
		LeadTime:          opts.LeadTime,
		Policy:            policy,
		Align:             align,
		Observer:          observer,
	})
	if err != nil {
		return err
	}

	receiptsRow, err := result.Table.Row(entities.MRPRowPlannedOrderReceipt)
	if err != nil {
		return err
	}
	return output.WriteItem(cmd.OutOrStdout(), &dto.ItemPlanResult{
		ItemID:          entities.ItemID(opts.Item),
		Strategy:        entities.StrategyMRP.String(),
		MRPTable:        result.Table,
		Releases:        result.Releases,
		OverdueReleases: result.OverdueReleases,
		Required:        receiptsRow,
	}, rootOpts.Format)
}
