package projection

import (
	"math"
	"time"

	domainerror "github.com/finplan/backend/internal/domain/error"
)

const daysPerYear = 365.25

// GoalSpec is the numeric view of a savings goal.
type GoalSpec struct {
	TargetAmount          float64
	TargetDate            time.Time
	CurrentAmount         float64
	MonthlyContribution   float64
	ExpectedReturnPercent float64
}

// GoalProjection summarizes where a goal stands and where it is heading.
type GoalProjection struct {
	// ProgressRatio is current/target and may exceed 1.
	ProgressRatio   float64
	ProgressPercent int
	Exceeded        bool

	YearsRemaining     float64
	FullYearsRemaining int
	MonthsRemaining    int

	ProjectedValue   float64
	ProjectedRatio   float64
	ProjectedPercent int

	Shortfall                  float64
	RecommendedMonthlyIncrease float64
	OnTrack                    bool
	// Overdue is set when the target date has passed with a shortfall left.
	Overdue bool
}

// ProjectGoal projects the goal from asOf to its target date.
//
// The current amount compounds monthly as a lump sum and the monthly
// contribution compounds as an annuity-due; both run for the whole
// months remaining. A target date less than a month away still gets one
// contribution period. The recommended increase is the extra monthly
// contribution that closes the shortfall exactly.
func ProjectGoal(goal GoalSpec, asOf time.Time) (GoalProjection, error) {
	if err := validateGoal(goal); err != nil {
		return GoalProjection{}, err
	}

	months := wholeMonthsBetween(asOf, goal.TargetDate)
	years := math.Max(0, goal.TargetDate.Sub(asOf).Hours()/24/daysPerYear)
	due := !goal.TargetDate.After(asOf)
	periods := months
	if periods == 0 && !due {
		periods = 1
	}

	lump, err := FutureValue(Input{
		Amount:            goal.CurrentAmount,
		AnnualRatePercent: goal.ExpectedReturnPercent,
		Horizon:           periods,
		Unit:              UnitMonth,
		Style:             StyleLumpSum,
	})
	if err != nil {
		return GoalProjection{}, err
	}
	stream, err := FutureValue(Input{
		Amount:            goal.MonthlyContribution,
		AnnualRatePercent: goal.ExpectedReturnPercent,
		Horizon:           periods,
		Unit:              UnitMonth,
		Style:             StylePeriodicContribution,
	})
	if err != nil {
		return GoalProjection{}, err
	}

	p := GoalProjection{
		ProgressRatio:      goal.CurrentAmount / goal.TargetAmount,
		YearsRemaining:     years,
		FullYearsRemaining: months / 12,
		MonthsRemaining:    months,
		ProjectedValue:     lump + stream,
	}
	p.ProgressPercent = displayPercent(p.ProgressRatio)
	p.Exceeded = p.ProgressRatio >= 1
	p.ProjectedRatio = p.ProjectedValue / goal.TargetAmount
	p.ProjectedPercent = displayPercent(p.ProjectedRatio)
	p.Shortfall = math.Max(0, goal.TargetAmount-p.ProjectedValue)
	p.OnTrack = p.Shortfall == 0

	if !p.OnTrack {
		if due {
			p.Overdue = true
		} else {
			p.RecommendedMonthlyIncrease = p.Shortfall / AnnuityDueFactor(MonthlyRate(goal.ExpectedReturnPercent), periods)
		}
	}

	return p, nil
}

// RequiredMonthlyContribution returns the monthly deposit that, together
// with the compounded current amount, reaches target after months.
// It returns 0 when the current amount alone is enough.
func RequiredMonthlyContribution(target, current, annualRatePercent float64, months int) (float64, error) {
	goal := GoalSpec{
		TargetAmount:          target,
		CurrentAmount:         current,
		ExpectedReturnPercent: annualRatePercent,
	}
	if err := validateGoal(goal); err != nil {
		return 0, err
	}
	if months <= 0 {
		return 0, domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNegativeHorizon, "months must be greater than zero")
	}

	grown, err := FutureValue(Input{
		Amount:            current,
		AnnualRatePercent: annualRatePercent,
		Horizon:           months,
		Unit:              UnitMonth,
		Style:             StyleLumpSum,
	})
	if err != nil {
		return 0, err
	}

	gap := target - grown
	if gap <= 0 {
		return 0, nil
	}
	return gap / AnnuityDueFactor(MonthlyRate(annualRatePercent), months), nil
}

func validateGoal(goal GoalSpec) error {
	if !isFinite(goal.TargetAmount) || !isFinite(goal.CurrentAmount) ||
		!isFinite(goal.MonthlyContribution) || !isFinite(goal.ExpectedReturnPercent) {
		return domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNonFiniteValue, "goal values must be finite numbers")
	}
	if goal.TargetAmount <= 0 {
		return domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNonPositiveTarget, "target amount must be greater than zero")
	}
	if goal.CurrentAmount < 0 || goal.MonthlyContribution < 0 {
		return domainerror.NewInvalidProjectionInput(domainerror.ErrCodeNegativeAmount, "current amount and monthly contribution must not be negative")
	}
	if goal.ExpectedReturnPercent <= -100 {
		return domainerror.NewInvalidProjectionInput(domainerror.ErrCodeRateOutOfRange, "expected return must be greater than -100%")
	}
	return nil
}

// wholeMonthsBetween counts complete calendar months from start to end, or 0 if end is not after start.
func wholeMonthsBetween(start, end time.Time) int {
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return 0
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// displayPercent rounds a ratio to a whole percentage clamped to [0, 100].
func displayPercent(ratio float64) int {
	pct := math.Round(ratio * 100)
	switch {
	case math.IsNaN(pct) || pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return int(pct)
	}
}
