package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finplan/backend/internal/application/usecase/calculator"
	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/integration/entrypoint/dto"
)

// CalculatorController handles the public calculator endpoints.
type CalculatorController struct {
	projectUseCase *calculator.ProjectUseCase
	cagrUseCase    *calculator.CAGRUseCase
	irrUseCase     *calculator.IRRUseCase
	hraUseCase     *calculator.HRAUseCase
	goalSIPUseCase *calculator.GoalSIPUseCase
}

// NewCalculatorController creates a new calculator controller instance.
func NewCalculatorController(
	projectUseCase *calculator.ProjectUseCase,
	cagrUseCase *calculator.CAGRUseCase,
	irrUseCase *calculator.IRRUseCase,
	hraUseCase *calculator.HRAUseCase,
	goalSIPUseCase *calculator.GoalSIPUseCase,
) *CalculatorController {
	return &CalculatorController{
		projectUseCase: projectUseCase,
		cagrUseCase:    cagrUseCase,
		irrUseCase:     irrUseCase,
		hraUseCase:     hraUseCase,
		goalSIPUseCase: goalSIPUseCase,
	}
}

// Growth returns the handler for POST /calculators/<kind>.
func (c *CalculatorController) Growth(kind calculator.Kind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req dto.GrowthRequest
		if !bindCalculatorRequest(ctx, &req) {
			return
		}

		output, err := c.projectUseCase.Execute(ctx.Request.Context(), req.ToGrowthInput(kind))
		if err != nil {
			handleError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.ToGrowthResponse(output))
	}
}

// CAGR handles POST /calculators/cagr requests.
func (c *CalculatorController) CAGR(ctx *gin.Context) {
	var req dto.CAGRRequest
	if !bindCalculatorRequest(ctx, &req) {
		return
	}

	output, err := c.cagrUseCase.Execute(ctx.Request.Context(), calculator.CAGRInput{
		InitialValue: req.InitialValue,
		FinalValue:   req.FinalValue,
		Years:        req.Years,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCAGRResponse(output))
}

// IRR handles POST /calculators/irr requests.
// Cash flows without a solution still answer 200 with defined set to false.
func (c *CalculatorController) IRR(ctx *gin.Context) {
	var req dto.IRRRequest
	if !bindCalculatorRequest(ctx, &req) {
		return
	}

	output, err := c.irrUseCase.Execute(ctx.Request.Context(), calculator.IRRInput{CashFlows: req.CashFlows})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIRRResponse(output))
}

// HRA handles POST /calculators/hra requests.
func (c *CalculatorController) HRA(ctx *gin.Context) {
	var req dto.HRARequest
	if !bindCalculatorRequest(ctx, &req) {
		return
	}

	output, err := c.hraUseCase.Execute(ctx.Request.Context(), calculator.HRAInput{
		BasicSalary: req.BasicSalary,
		HRAReceived: req.HRAReceived,
		RentPaid:    req.RentPaid,
		IsMetroCity: req.IsMetroCity,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHRAResponse(output))
}

// GoalSIP handles POST /calculators/goal-sip requests.
func (c *CalculatorController) GoalSIP(ctx *gin.Context) {
	var req dto.GoalSIPRequest
	if !bindCalculatorRequest(ctx, &req) {
		return
	}

	output, err := c.goalSIPUseCase.Execute(ctx.Request.Context(), calculator.GoalSIPInput{
		TargetAmount:      req.TargetAmount,
		CurrentSavings:    req.CurrentSavings,
		AnnualRatePercent: req.AnnualRatePercent,
		Years:             req.Years,
		Months:            req.Months,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalSIPResponse(output))
}

func bindCalculatorRequest(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingCalcFields),
			Details: err.Error(),
		})
		return false
	}
	return true
}
