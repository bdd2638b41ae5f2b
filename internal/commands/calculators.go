package commands

import (
	"github.com/spf13/cobra"

	"github.com/finplan/backend/internal/application/usecase/calculator"
	"github.com/finplan/backend/internal/integration/entrypoint/dto"
)

var growthUsage = map[calculator.Kind]string{
	calculator.KindSIP:        "Project a monthly SIP",
	calculator.KindLumpSum:    "Project a one-time investment",
	calculator.KindFD:         "Project a fixed deposit",
	calculator.KindRD:         "Project a recurring deposit",
	calculator.KindNSC:        "Project a National Savings Certificate",
	calculator.KindSSY:        "Project a Sukanya Samriddhi account",
	calculator.KindMutualFund: "Project a lump sum plus a monthly SIP",
}

func newGrowthCommand(opts *options, kind calculator.Kind) *cobra.Command {
	var req dto.GrowthRequest

	use := string(kind)
	if kind == calculator.KindMutualFund {
		use = "mutual-fund"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: growthUsage[kind],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := calculator.NewProjectUseCase(opts.settings, nil)
			out, err := uc.Execute(cmd.Context(), req.ToGrowthInput(kind))
			if err != nil {
				return err
			}

			rows := [][2]string{
				{"Invested", out.Formatted.Invested},
				{"Returns", out.Formatted.Returns},
				{"Maturity", out.Formatted.Maturity},
			}
			for _, p := range out.Series {
				rows = append(rows, [2]string{p.Label, opts.settings.Currency.Format(p.Value)})
			}
			return opts.render(cmd.OutOrStdout(), dto.ToGrowthResponse(out), rows)
		},
	}

	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "principal, or the periodic deposit for sip, rd and ssy")
	cmd.Flags().Float64Var(&req.AnnualRatePercent, "rate", 0, "expected annual rate in percent")
	cmd.Flags().IntVar(&req.Years, "years", 0, "tenure in years")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("rate")

	switch kind {
	case calculator.KindSIP, calculator.KindRD:
		cmd.Flags().IntVar(&req.Months, "months", 0, "extra months on top of years")
	case calculator.KindMutualFund:
		cmd.Flags().Float64Var(&req.MonthlyAmount, "monthly", 0, "monthly SIP amount")
	}

	return cmd
}

func newCAGRCommand(opts *options) *cobra.Command {
	var req dto.CAGRRequest

	cmd := &cobra.Command{
		Use:   "cagr",
		Short: "Compound annual growth rate between two values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := calculator.NewCAGRUseCase(opts.settings).Execute(cmd.Context(), calculator.CAGRInput{
				InitialValue: req.InitialValue,
				FinalValue:   req.FinalValue,
				Years:        req.Years,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), dto.ToCAGRResponse(out), [][2]string{
				{"CAGR", out.FormattedCAGR},
				{"Gain", out.FormattedGain},
			})
		},
	}

	cmd.Flags().Float64Var(&req.InitialValue, "initial", 0, "starting value")
	cmd.Flags().Float64Var(&req.FinalValue, "final", 0, "ending value")
	cmd.Flags().Float64Var(&req.Years, "years", 0, "holding period in years")
	_ = cmd.MarkFlagRequired("initial")
	_ = cmd.MarkFlagRequired("final")
	_ = cmd.MarkFlagRequired("years")

	return cmd
}

func newIRRCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "irr FLOW [FLOW...]",
		Short: "Internal rate of return of periodic cash flows",
		Long:  "Internal rate of return of periodic cash flows. Outflows are negative, so pass them after --\n(finplan irr -- -100000 30000 40000 50000). Flows may also be comma separated.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flows, err := parseFlows(args)
			if err != nil {
				return err
			}
			out, err := calculator.NewIRRUseCase(opts.settings).Execute(cmd.Context(), calculator.IRRInput{CashFlows: flows})
			if err != nil {
				return err
			}

			rows := [][2]string{{"IRR", out.Display}}
			if !out.Defined {
				rows = append(rows, [2]string{"Reason", out.Reason})
			}
			rows = append(rows, [2]string{"Net cash flow", out.FormattedNet})
			return opts.render(cmd.OutOrStdout(), dto.ToIRRResponse(out), rows)
		},
	}
}

func newHRACommand(opts *options) *cobra.Command {
	var req dto.HRARequest

	cmd := &cobra.Command{
		Use:   "hra",
		Short: "House rent allowance exemption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := calculator.NewHRAUseCase(opts.settings).Execute(cmd.Context(), calculator.HRAInput{
				BasicSalary: req.BasicSalary,
				HRAReceived: req.HRAReceived,
				RentPaid:    req.RentPaid,
				IsMetroCity: req.IsMetroCity,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), dto.ToHRAResponse(out), [][2]string{
				{"Exempt", out.FormattedExempted},
				{"Taxable", out.FormattedTaxable},
			})
		},
	}

	cmd.Flags().Float64Var(&req.BasicSalary, "basic", 0, "basic salary")
	cmd.Flags().Float64Var(&req.HRAReceived, "hra", 0, "HRA received")
	cmd.Flags().Float64Var(&req.RentPaid, "rent", 0, "rent paid")
	cmd.Flags().BoolVar(&req.IsMetroCity, "metro", false, "the rented home is in a metro city")
	_ = cmd.MarkFlagRequired("basic")
	_ = cmd.MarkFlagRequired("hra")
	_ = cmd.MarkFlagRequired("rent")

	return cmd
}

func newGoalSIPCommand(opts *options) *cobra.Command {
	var req dto.GoalSIPRequest

	cmd := &cobra.Command{
		Use:   "goal-sip",
		Short: "Monthly SIP needed to reach a target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := calculator.NewGoalSIPUseCase(opts.settings).Execute(cmd.Context(), calculator.GoalSIPInput{
				TargetAmount:      req.TargetAmount,
				CurrentSavings:    req.CurrentSavings,
				AnnualRatePercent: req.AnnualRatePercent,
				Years:             req.Years,
				Months:            req.Months,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), dto.ToGoalSIPResponse(out), [][2]string{
				{"Target", out.FormattedTarget},
				{"Savings at horizon", out.FormattedSavings},
				{"Monthly SIP", out.FormattedMonthly},
			})
		},
	}

	cmd.Flags().Float64Var(&req.TargetAmount, "target", 0, "target amount")
	cmd.Flags().Float64Var(&req.CurrentSavings, "saved", 0, "amount already saved")
	cmd.Flags().Float64Var(&req.AnnualRatePercent, "rate", 0, "expected annual rate in percent")
	cmd.Flags().IntVar(&req.Years, "years", 0, "years to the target")
	cmd.Flags().IntVar(&req.Months, "months", 0, "extra months on top of years")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
