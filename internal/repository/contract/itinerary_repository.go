package contract

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"museum-itinerary-be/internal/entity"
)

// ErrNotFound signals that the targeted record no longer exists. The
// background scheduler treats it as a skip, not an abort.
var ErrNotFound = errors.New("record not found")

type IItineraryRepository interface {
	Create(ctx context.Context, itinerary *entity.Itinerary) error
	Update(ctx context.Context, itinerary *entity.Itinerary) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Itinerary, error)
}

type IItineraryStopRepository interface {
	CreateBulk(ctx context.Context, stops []*entity.ItineraryStop) error
	ListByItinerary(ctx context.Context, itineraryId uuid.UUID) ([]*entity.ItineraryStop, error)

	// UpdateContent fills the content fields of the stop addressed by
	// (itinerary, order index). Returns ErrNotFound when the record is gone.
	UpdateContent(ctx context.Context, itineraryId uuid.UUID, order int, stop *entity.ItineraryStop) error

	// MarkStatus advances the stop's generation status.
	MarkStatus(ctx context.Context, itineraryId uuid.UUID, order int, status string) error
}
