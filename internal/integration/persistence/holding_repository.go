package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finplan/backend/internal/application/adapter"
	"github.com/finplan/backend/internal/domain/entity"
	domainerror "github.com/finplan/backend/internal/domain/error"
	"github.com/finplan/backend/internal/integration/persistence/model"
)

// holdingRepository implements the adapter.HoldingRepository interface.
type holdingRepository struct {
	db *gorm.DB
}

// NewHoldingRepository creates a new holding repository instance.
func NewHoldingRepository(db *gorm.DB) adapter.HoldingRepository {
	return &holdingRepository{
		db: db,
	}
}

func (r *holdingRepository) Create(ctx context.Context, holding *entity.Holding) error {
	return r.db.WithContext(ctx).Create(model.HoldingFromEntity(holding)).Error
}

func (r *holdingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Holding, error) {
	var holdingModel model.HoldingModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&holdingModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrHoldingNotFound
		}
		return nil, result.Error
	}
	return holdingModel.ToEntity(), nil
}

func (r *holdingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Holding, error) {
	var holdingModels []model.HoldingModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date ASC").
		Find(&holdingModels)
	if result.Error != nil {
		return nil, result.Error
	}

	holdings := make([]*entity.Holding, len(holdingModels))
	for i := range holdingModels {
		holdings[i] = holdingModels[i].ToEntity()
	}
	return holdings, nil
}

func (r *holdingRepository) Update(ctx context.Context, holding *entity.Holding) error {
	return r.db.WithContext(ctx).Save(model.HoldingFromEntity(holding)).Error
}

func (r *holdingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.HoldingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrHoldingNotFound
	}
	return nil
}
