package persistence

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finplan/backend/internal/domain/entity"
	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := entity.NewUser("meera@example.com", "Meera", "hash")
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "meera@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.EmailNotifications)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meera", byID.Name)

	exists, err := repo.ExistsByEmail(ctx, "meera@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}

func TestGoalRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(newTestDB(t))
	userID := uuid.New()

	later := entity.NewGoal(userID, "Retirement", 30_000_000, day(2050, time.January, 1), 500_000, 25_000, 11)
	sooner := entity.NewGoal(userID, "Car", 900_000, day(2028, time.June, 30), 150_000, 12_000, 7.5)
	foreign := entity.NewGoal(uuid.New(), "Other", 1_000, day(2027, time.January, 1), 0, 0, 0)
	for _, g := range []*entity.Goal{later, sooner, foreign} {
		require.NoError(t, repo.Create(ctx, g))
	}

	goals, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, sooner.ID, goals[0].ID, "nearest target date first")
	assert.Equal(t, 7.5, goals[0].ExpectedReturnPercent)
	assert.True(t, goals[0].TargetDate.Equal(sooner.TargetDate))

	sooner.CurrentAmount = 200_000
	require.NoError(t, repo.Update(ctx, sooner))
	updated, err := repo.FindByID(ctx, sooner.ID)
	require.NoError(t, err)
	assert.Equal(t, 200_000.0, updated.CurrentAmount)

	require.NoError(t, repo.Delete(ctx, sooner.ID))
	_, err = repo.FindByID(ctx, sooner.ID)
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, sooner.ID), domainerror.ErrGoalNotFound)

	goals, err = repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestHoldingRepositoryAndTotals(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	holdings := NewHoldingRepository(db)
	totals := NewDashboardRepository(db)
	userID := uuid.New()

	empty, err := totals.GetPortfolioTotals(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, empty.Holdings)
	assert.True(t, empty.Invested.IsZero())

	fund := entity.NewHolding(userID, "Index fund", entity.HoldingTypeMutualFund, 100_000, 140_000, day(2022, time.April, 1))
	gold := entity.NewHolding(userID, "Gold bond", entity.HoldingTypeGold, 50_000.5, 61_000.25, day(2021, time.January, 15))
	sold := entity.NewHolding(userID, "Old stock", entity.HoldingTypeStock, 10_000, 9_000, day(2020, time.May, 5))
	for _, h := range []*entity.Holding{fund, gold, sold} {
		require.NoError(t, holdings.Create(ctx, h))
	}
	require.NoError(t, holdings.Delete(ctx, sold.ID))

	list, err := holdings.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, gold.ID, list[0].ID, "oldest purchase first")
	assert.Equal(t, entity.HoldingTypeGold, list[0].Type)

	got, err := totals.GetPortfolioTotals(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Holdings, "soft-deleted holdings are excluded")
	assert.Equal(t, "150000.5", got.Invested.String())
	assert.Equal(t, "201000.25", got.Current.String())

	_, err = holdings.FindByID(ctx, sold.ID)
	assert.ErrorIs(t, err, domainerror.ErrHoldingNotFound)
}
