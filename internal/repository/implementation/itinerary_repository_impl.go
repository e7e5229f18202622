package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"museum-itinerary-be/internal/entity"
	"museum-itinerary-be/internal/repository/contract"
)

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) contract.IItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *entity.Itinerary) error {
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *itineraryRepository) Update(ctx context.Context, itinerary *entity.Itinerary) error {
	now := time.Now()
	itinerary.UpdatedAt = &now
	return r.db.WithContext(ctx).Save(itinerary).Error
}

func (r *itineraryRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Itinerary, error) {
	var itinerary entity.Itinerary
	err := r.db.WithContext(ctx).First(&itinerary, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, contract.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &itinerary, nil
}

type itineraryStopRepository struct {
	db *gorm.DB
}

func NewItineraryStopRepository(db *gorm.DB) contract.IItineraryStopRepository {
	return &itineraryStopRepository{db: db}
}

func (r *itineraryStopRepository) CreateBulk(ctx context.Context, stops []*entity.ItineraryStop) error {
	if len(stops) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(stops).Error
}

func (r *itineraryStopRepository) ListByItinerary(ctx context.Context, itineraryId uuid.UUID) ([]*entity.ItineraryStop, error) {
	var stops []*entity.ItineraryStop
	err := r.db.WithContext(ctx).
		Where("itinerary_id = ?", itineraryId).
		Order("order_index asc").
		Find(&stops).Error
	if err != nil {
		return nil, err
	}
	return stops, nil
}

func (r *itineraryStopRepository) UpdateContent(ctx context.Context, itineraryId uuid.UUID, order int, stop *entity.ItineraryStop) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entity.ItineraryStop{}).
		Where("itinerary_id = ? AND order_index = ?", itineraryId, order).
		Updates(map[string]interface{}{
			"introduction":   stop.Introduction,
			"history":        stop.History,
			"curiosities":    stop.Curiosities,
			"observations":   stop.Observations,
			"recommendation": stop.Recommendation,
			"provenance":     stop.Provenance,
			"status":         stop.Status,
			"updated_at":     &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}

func (r *itineraryStopRepository) MarkStatus(ctx context.Context, itineraryId uuid.UUID, order int, status string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entity.ItineraryStop{}).
		Where("itinerary_id = ? AND order_index = ?", itineraryId, order).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}
