package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mherran/prodplan/pkg/application/services"
	"github.com/mherran/prodplan/pkg/domain/planning"
	"github.com/mherran/prodplan/pkg/domain/repositories"
	"github.com/mherran/prodplan/pkg/infrastructure/logging"
	csvrepo "github.com/mherran/prodplan/pkg/infrastructure/repositories/csv"
	"github.com/mherran/prodplan/pkg/infrastructure/scenario"
	"github.com/mherran/prodplan/pkg/interfaces/cli/output"
)

// NewRunCommand creates the run command: a full scenario execution with
// multi-level explosion and capacity reporting.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml | csv-dir>",
		Short: "Plan every item of a scenario",
		Long: `Load a scenario and plan every item in BOM dependency order
(parents before children, planned releases exploded into child gross
requirements), then report the capacity balance for items that declare a
limit.

The scenario is either a YAML file or a directory of CSV files (items.csv
and demand.csv, plus optional receipts.csv, capacity.csv and bom.csv).

Example:
  prodplan run examples/desks.yaml
  prodplan run ./data --format json -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runScenario(cmd *cobra.Command, rootOpts *RootOptions, path string) error {
	logger := logging.Logger()

	logger.Info().Str("scenario", path).Msg("loading scenario")
	items, bom, demands, horizon, err := loadScenario(path)
	if err != nil {
		return err
	}

	var observer planning.Observer
	if rootOpts.Verbose {
		observer = logging.PlanObserver(logger)
	}

	planner := services.NewPlanningService(observer)
	explosion := services.NewExplosionService(items, bom, demands, planner)
	runner := services.NewRunService(items, explosion, services.NewCapacityService())

	run, err := runner.Run(cmd.Context(), horizon)
	if err != nil {
		return err
	}
	logger.Info().
		Str("run_id", run.RunID).
		Int("items", len(run.Items)).
		Dur("elapsed", run.Elapsed).
		Msg("scenario planned")

	return output.WriteRun(cmd.OutOrStdout(), run, rootOpts.Format)
}

func loadScenario(path string) (
	repositories.ItemRepository,
	repositories.BOMRepository,
	repositories.DemandRepository,
	int,
	error,
) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	if info.IsDir() {
		dataset, err := csvrepo.NewLoader().LoadDirectory(path)
		if err != nil {
			return nil, nil, nil, 0, err
		}
		return dataset.Items, dataset.BOM, dataset.Demands, dataset.Horizon, nil
	}

	f, err := scenario.Load(path)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	items, bom, demands, err := f.Repositories()
	if err != nil {
		return nil, nil, nil, 0, err
	}
	return items, bom, demands, f.Horizon, nil
}
