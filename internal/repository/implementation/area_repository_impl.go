package implementation

import (
	"context"

	"gorm.io/gorm"

	"museum-itinerary-be/internal/entity"
	"museum-itinerary-be/internal/repository/contract"
)

type areaRepository struct {
	db *gorm.DB
}

func NewAreaRepository(db *gorm.DB) contract.IAreaRepository {
	return &areaRepository{db: db}
}

func (r *areaRepository) ListActive(ctx context.Context, interests []string) ([]*entity.Area, error) {
	query := r.db.WithContext(ctx).
		Where("active = ?", true)

	if len(interests) > 0 {
		query = query.Where("category IN ?", interests)
	}

	var areas []*entity.Area
	if err := query.Order("recommended_order asc").Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}
