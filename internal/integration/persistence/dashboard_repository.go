package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finplan/backend/internal/application/usecase/dashboard"
	"github.com/finplan/backend/internal/integration/persistence/model"
)

// dashboardRepository implements the dashboard.DashboardRepository interface.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetPortfolioTotals sums the live holdings of a user in the database.
func (r *dashboardRepository) GetPortfolioTotals(ctx context.Context, userID uuid.UUID) (*dashboard.PortfolioTotals, error) {
	var result struct {
		Holdings int             `gorm:"column:holdings"`
		Invested decimal.Decimal `gorm:"column:invested"`
		Current  decimal.Decimal `gorm:"column:current"`
	}

	err := r.db.WithContext(ctx).
		Model(&model.HoldingModel{}).
		Select("COUNT(*) AS holdings, COALESCE(SUM(invested_amount), 0) AS invested, COALESCE(SUM(current_value), 0) AS current").
		Where("user_id = ?", userID).
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio totals: %w", err)
	}

	return &dashboard.PortfolioTotals{
		Holdings: result.Holdings,
		Invested: result.Invested,
		Current:  result.Current,
	}, nil
}
