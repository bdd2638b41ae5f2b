package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finplan/backend/internal/domain/entity"
)

// HoldingModel represents the holdings table in the database.
type HoldingModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name           string         `gorm:"type:varchar(100);not null"`
	Type           string         `gorm:"type:varchar(20);not null"`
	InvestedAmount float64        `gorm:"type:decimal(15,2);not null"`
	CurrentValue   float64        `gorm:"type:decimal(15,2);not null"`
	PurchaseDate   time.Time      `gorm:"type:date;not null"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the HoldingModel.
func (HoldingModel) TableName() string {
	return "holdings"
}

// ToEntity converts a HoldingModel to a domain Holding entity.
func (m *HoldingModel) ToEntity() *entity.Holding {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Holding{
		ID:             m.ID,
		UserID:         m.UserID,
		Name:           m.Name,
		Type:           entity.HoldingType(m.Type),
		InvestedAmount: m.InvestedAmount,
		CurrentValue:   m.CurrentValue,
		PurchaseDate:   m.PurchaseDate.UTC(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}

// HoldingFromEntity creates a HoldingModel from a domain Holding entity.
func HoldingFromEntity(holding *entity.Holding) *HoldingModel {
	var deletedAt gorm.DeletedAt
	if holding.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *holding.DeletedAt, Valid: true}
	}

	return &HoldingModel{
		ID:             holding.ID,
		UserID:         holding.UserID,
		Name:           holding.Name,
		Type:           string(holding.Type),
		InvestedAmount: holding.InvestedAmount,
		CurrentValue:   holding.CurrentValue,
		PurchaseDate:   holding.PurchaseDate,
		CreatedAt:      holding.CreatedAt,
		UpdatedAt:      holding.UpdatedAt,
		DeletedAt:      deletedAt,
	}
}

// AllModels lists the models migrated at startup.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&GoalModel{},
		&HoldingModel{},
	}
}
