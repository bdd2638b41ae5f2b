// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardRepository defines the aggregate queries behind the dashboard widgets.
type DashboardRepository interface {
	// GetPortfolioTotals returns summed invested and current values of a user's holdings.
	GetPortfolioTotals(ctx context.Context, userID uuid.UUID) (*PortfolioTotals, error)
}

// PortfolioTotals represents aggregated holding values.
type PortfolioTotals struct {
	Holdings int
	Invested decimal.Decimal
	Current  decimal.Decimal
}
