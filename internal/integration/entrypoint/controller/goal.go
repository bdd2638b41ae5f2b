package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finplan/backend/internal/application/usecase/goal"
	"github.com/finplan/backend/internal/application/usecase/notification"
	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/integration/entrypoint/dto"
	"github.com/finplan/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles goal endpoints.
type GoalController struct {
	listUseCase    *goal.ListGoalsUseCase
	createUseCase  *goal.CreateGoalUseCase
	getUseCase     *goal.GetGoalUseCase
	updateUseCase  *goal.UpdateGoalUseCase
	deleteUseCase  *goal.DeleteGoalUseCase
	projectUseCase *goal.ProjectGoalUseCase
	digestUseCase  *notification.SendGoalDigestUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	projectUseCase *goal.ProjectGoalUseCase,
	digestUseCase *notification.SendGoalDigestUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		projectUseCase: projectUseCase,
		digestUseCase:  digestUseCase,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingGoalFields))
		return
	}

	targetDate, err := time.Parse(dto.DateLayout, req.TargetDate)
	if err != nil {
		badRequest(ctx, "target_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidTargetDate))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		UserID:                userID,
		Name:                  req.Name,
		TargetAmount:          req.TargetAmount,
		TargetDate:            targetDate,
		CurrentAmount:         req.CurrentAmount,
		MonthlyContribution:   req.MonthlyContribution,
		ExpectedReturnPercent: req.ExpectedReturnPercent,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{GoalID: goalID, UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingGoalFields))
		return
	}

	input := goal.UpdateGoalInput{
		GoalID:                goalID,
		UserID:                userID,
		Name:                  req.Name,
		TargetAmount:          req.TargetAmount,
		CurrentAmount:         req.CurrentAmount,
		MonthlyContribution:   req.MonthlyContribution,
		ExpectedReturnPercent: req.ExpectedReturnPercent,
	}
	if req.TargetDate != nil {
		targetDate, err := time.Parse(dto.DateLayout, *req.TargetDate)
		if err != nil {
			badRequest(ctx, "target_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidTargetDate))
			return
		}
		input.TargetDate = &targetDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{GoalID: goalID, UserID: userID}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Projection handles GET /goals/:id/projection requests.
func (c *GoalController) Projection(ctx *gin.Context) {
	userID, goalID, ok := c.goalRequest(ctx)
	if !ok {
		return
	}

	output, err := c.projectUseCase.Execute(ctx.Request.Context(), goal.ProjectGoalInput{GoalID: goalID, UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalProjectionResponse(output))
}

// Digest handles POST /goals/digest requests.
func (c *GoalController) Digest(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.digestUseCase.Execute(ctx.Request.Context(), notification.SendGoalDigestInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.DigestResponse{
		MessageID: output.MessageID,
		Goals:     output.Goals,
	})
}

func (c *GoalController) goalRequest(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := requireUser(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid goal ID format", string(domainerror.ErrCodeMissingGoalFields))
		return uuid.Nil, uuid.Nil, false
	}
	return userID, goalID, true
}

// requireUser reads the authenticated user or answers 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}
