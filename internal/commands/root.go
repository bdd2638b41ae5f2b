// Package commands implements the finplan command line calculators.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finplan/backend/config"
	"github.com/finplan/backend/internal/application/usecase/calculator"
	"github.com/finplan/backend/internal/infra/dependency"
)

// options holds the flags shared by every calculator.
type options struct {
	json     bool
	settings calculator.Settings
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "finplan",
		Short: "Personal finance calculators",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.settings = dependency.CalculatorSettings(config.Load())
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "print the result as JSON")

	for _, kind := range []calculator.Kind{
		calculator.KindSIP,
		calculator.KindLumpSum,
		calculator.KindFD,
		calculator.KindRD,
		calculator.KindNSC,
		calculator.KindSSY,
		calculator.KindMutualFund,
	} {
		rootCmd.AddCommand(newGrowthCommand(opts, kind))
	}
	rootCmd.AddCommand(
		newCAGRCommand(opts),
		newIRRCommand(opts),
		newHRACommand(opts),
		newGoalSIPCommand(opts),
	)

	return rootCmd
}

// render prints v as JSON, or rows as an aligned table.
func (o *options) render(w io.Writer, v any, rows [][2]string) error {
	if o.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

// parseFlows reads cash flows given as separate args or comma separated.
func parseFlows(args []string) ([]float64, error) {
	var flows []float64
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid cash flow %q: %w", field, err)
			}
			flows = append(flows, v)
		}
	}
	if len(flows) < 2 {
		return nil, fmt.Errorf("at least two cash flows are required")
	}
	return flows, nil
}
