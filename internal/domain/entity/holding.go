package entity

import (
	"time"

	"github.com/google/uuid"
)

// HoldingType represents the asset class of a holding.
type HoldingType string

const (
	HoldingTypeMutualFund HoldingType = "mutual_fund"
	HoldingTypeStock      HoldingType = "stock"
	HoldingTypeFD         HoldingType = "fd"
	HoldingTypePPF        HoldingType = "ppf"
	HoldingTypeGold       HoldingType = "gold"
	HoldingTypeOther      HoldingType = "other"
)

// IsValid reports whether the holding type is known.
func (t HoldingType) IsValid() bool {
	switch t {
	case HoldingTypeMutualFund, HoldingTypeStock, HoldingTypeFD, HoldingTypePPF, HoldingTypeGold, HoldingTypeOther:
		return true
	}
	return false
}

// Holding is a single investment position entered by the user.
// Values are user-maintained; there is no market data feed.
type Holding struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Type           HoldingType
	InvestedAmount float64
	CurrentValue   float64
	PurchaseDate   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// NewHolding creates a new Holding entity.
func NewHolding(userID uuid.UUID, name string, holdingType HoldingType, investedAmount, currentValue float64, purchaseDate time.Time) *Holding {
	now := time.Now().UTC()

	return &Holding{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		Type:           holdingType,
		InvestedAmount: investedAmount,
		CurrentValue:   currentValue,
		PurchaseDate:   purchaseDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// YearsHeld returns the fractional number of years between the purchase date and asOf.
func (h *Holding) YearsHeld(asOf time.Time) float64 {
	if !asOf.After(h.PurchaseDate) {
		return 0
	}
	return asOf.Sub(h.PurchaseDate).Hours() / 24 / 365.25
}
