package calculator

import (
	"context"

	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/domain/projection"
)

// GoalSIPInput represents the input for the goal-based SIP calculator.
type GoalSIPInput struct {
	TargetAmount      float64
	CurrentSavings    float64
	AnnualRatePercent float64
	Years             int
	Months            int
}

// GoalSIPOutput represents the output of the goal-based SIP calculator.
type GoalSIPOutput struct {
	RequiredMonthly    float64
	SavingsFutureValue float64
	TotalInvested      float64
	Series             []projection.SeriesPoint
	FormattedMonthly   string
	FormattedTarget    string
	FormattedSavings   string
}

// GoalSIPUseCase finds the monthly SIP that reaches a target amount.
type GoalSIPUseCase struct {
	settings Settings
}

// NewGoalSIPUseCase creates a new GoalSIPUseCase instance.
func NewGoalSIPUseCase(settings Settings) *GoalSIPUseCase {
	return &GoalSIPUseCase{settings: settings}
}

// Execute performs the goal SIP calculation.
func (uc *GoalSIPUseCase) Execute(_ context.Context, input GoalSIPInput) (*GoalSIPOutput, error) {
	months := input.Years*12 + input.Months
	if months <= 0 {
		return nil, domainerror.NewInvalidProjectionInput(
			domainerror.ErrCodeNonPositiveYears,
			"tenure must be at least one month",
		)
	}

	required, err := projection.RequiredMonthlyContribution(input.TargetAmount, input.CurrentSavings, input.AnnualRatePercent, months)
	if err != nil {
		return nil, err
	}

	unit, horizon := projection.UnitYear, input.Years
	if input.Months != 0 {
		unit, horizon = projection.UnitMonth, months
	}
	savings := projection.Input{
		Amount:            input.CurrentSavings,
		AnnualRatePercent: input.AnnualRatePercent,
		Unit:              projection.UnitMonth,
		Style:             projection.StyleLumpSum,
	}
	sip := projection.Input{
		Amount:            required,
		AnnualRatePercent: input.AnnualRatePercent,
		Unit:              unit,
		Style:             projection.StylePeriodicContribution,
	}
	p := plan{unit: unit, horizon: horizon, legs: []leg{newLeg(savings, unit), newLeg(sip, unit)}}

	series, err := p.sample(uc.settings)
	if err != nil {
		return nil, err
	}
	savingsValue, err := projection.FutureValue(p.legs[0].at(horizon))
	if err != nil {
		return nil, err
	}

	return &GoalSIPOutput{
		RequiredMonthly:    required,
		SavingsFutureValue: savingsValue,
		TotalInvested:      input.CurrentSavings + required*float64(months),
		Series:             series,
		FormattedMonthly:   uc.settings.Currency.Format(required),
		FormattedTarget:    uc.settings.Currency.Format(input.TargetAmount),
		FormattedSavings:   uc.settings.Currency.Format(savingsValue),
	}, nil
}
