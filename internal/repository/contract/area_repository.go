package contract

import (
	"context"

	"museum-itinerary-be/internal/entity"
)

type IAreaRepository interface {
	// ListActive returns active areas in recommended order. A non-empty
	// interest list filters by category.
	ListActive(ctx context.Context, interests []string) ([]*entity.Area, error)
}
