// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/finplan/backend/internal/domain/projection"
)

// Goal represents a savings goal: an amount to reach by a date.
type Goal struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Name                  string
	TargetAmount          float64
	TargetDate            time.Time
	CurrentAmount         float64
	MonthlyContribution   float64
	ExpectedReturnPercent float64
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity.
func NewGoal(userID uuid.UUID, name string, targetAmount float64, targetDate time.Time, currentAmount, monthlyContribution, expectedReturnPercent float64) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:                    uuid.New(),
		UserID:                userID,
		Name:                  name,
		TargetAmount:          targetAmount,
		TargetDate:            targetDate,
		CurrentAmount:         currentAmount,
		MonthlyContribution:   monthlyContribution,
		ExpectedReturnPercent: expectedReturnPercent,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// Spec returns the projection inputs of the goal.
func (g *Goal) Spec() projection.GoalSpec {
	return projection.GoalSpec{
		TargetAmount:          g.TargetAmount,
		TargetDate:            g.TargetDate,
		CurrentAmount:         g.CurrentAmount,
		MonthlyContribution:   g.MonthlyContribution,
		ExpectedReturnPercent: g.ExpectedReturnPercent,
	}
}

// GoalWithProjection pairs a goal with its projection at a point in time.
type GoalWithProjection struct {
	Goal       *Goal
	Projection projection.GoalProjection
}
