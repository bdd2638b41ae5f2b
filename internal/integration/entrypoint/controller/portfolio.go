package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finplan/backend/internal/application/usecase/portfolio"
	"github.com/finplan/backend/internal/domain/entity"
	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/integration/entrypoint/dto"
)

// PortfolioController handles holding and portfolio endpoints.
type PortfolioController struct {
	listUseCase    *portfolio.ListHoldingsUseCase
	createUseCase  *portfolio.CreateHoldingUseCase
	updateUseCase  *portfolio.UpdateHoldingUseCase
	deleteUseCase  *portfolio.DeleteHoldingUseCase
	summaryUseCase *portfolio.GetSummaryUseCase
}

// NewPortfolioController creates a new portfolio controller instance.
func NewPortfolioController(
	listUseCase *portfolio.ListHoldingsUseCase,
	createUseCase *portfolio.CreateHoldingUseCase,
	updateUseCase *portfolio.UpdateHoldingUseCase,
	deleteUseCase *portfolio.DeleteHoldingUseCase,
	summaryUseCase *portfolio.GetSummaryUseCase,
) *PortfolioController {
	return &PortfolioController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		summaryUseCase: summaryUseCase,
	}
}

// ListHoldings handles GET /portfolio/holdings requests.
func (c *PortfolioController) ListHoldings(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), portfolio.ListHoldingsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHoldingListResponse(output.Holdings))
}

// CreateHolding handles POST /portfolio/holdings requests.
func (c *PortfolioController) CreateHolding(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateHoldingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingHoldingFields))
		return
	}

	purchaseDate, err := time.Parse(dto.DateLayout, req.PurchaseDate)
	if err != nil {
		badRequest(ctx, "purchase_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidPurchaseDate))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), portfolio.CreateHoldingInput{
		UserID:         userID,
		Name:           req.Name,
		Type:           entity.HoldingType(req.Type),
		InvestedAmount: req.InvestedAmount,
		CurrentValue:   req.CurrentValue,
		PurchaseDate:   purchaseDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToHoldingResponse(output.Holding))
}

// UpdateHolding handles PATCH /portfolio/holdings/:id requests.
func (c *PortfolioController) UpdateHolding(ctx *gin.Context) {
	userID, holdingID, ok := holdingRequest(ctx)
	if !ok {
		return
	}

	var req dto.UpdateHoldingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingHoldingFields))
		return
	}

	input := portfolio.UpdateHoldingInput{
		HoldingID:      holdingID,
		UserID:         userID,
		Name:           req.Name,
		InvestedAmount: req.InvestedAmount,
		CurrentValue:   req.CurrentValue,
	}
	if req.Type != nil {
		holdingType := entity.HoldingType(*req.Type)
		input.Type = &holdingType
	}
	if req.PurchaseDate != nil {
		purchaseDate, err := time.Parse(dto.DateLayout, *req.PurchaseDate)
		if err != nil {
			badRequest(ctx, "purchase_date must be YYYY-MM-DD", string(domainerror.ErrCodeInvalidPurchaseDate))
			return
		}
		input.PurchaseDate = &purchaseDate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHoldingResponse(output.Holding))
}

// DeleteHolding handles DELETE /portfolio/holdings/:id requests.
func (c *PortfolioController) DeleteHolding(ctx *gin.Context) {
	userID, holdingID, ok := holdingRequest(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), portfolio.DeleteHoldingInput{HoldingID: holdingID, UserID: userID}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Summary handles GET /portfolio/summary requests.
func (c *PortfolioController) Summary(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), portfolio.GetSummaryInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPortfolioSummaryResponse(output))
}

func holdingRequest(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := requireUser(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	holdingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid holding ID format", string(domainerror.ErrCodeMissingHoldingFields))
		return uuid.Nil, uuid.Nil, false
	}
	return userID, holdingID, true
}
