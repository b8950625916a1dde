// Package commands wires the planning engine into a cobra CLI.
package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mherran/prodplan/pkg/infrastructure/config"
	"github.com/mherran/prodplan/pkg/interfaces/cli/output"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string
}

// NewRootCommand creates the prodplan root command.
func NewRootCommand(cfg config.Config) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "prodplan",
		Short: "Production and material planning calculator",
		Long: `prodplan computes master production schedules (level and chase
strategies) and time-phased MRP netting plans from scenario files, CSV data
or flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !output.IsValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, output.ValidFormats)
			}
			if opts.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (logs every planning step)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (text|json|csv)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewMPSCommand(opts))
	cmd.AddCommand(NewMRPCommand(opts))

	return cmd
}
