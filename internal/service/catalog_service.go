package service

import (
	"context"
	"fmt"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
)

// CatalogService reads the reference data offered in the trip wizard.
type CatalogService struct {
	destinations ports.DestinationRepository
	activities   ports.ActivityTypeRepository
}

func NewCatalogService(destinations ports.DestinationRepository, activities ports.ActivityTypeRepository) *CatalogService {
	return &CatalogService{destinations: destinations, activities: activities}
}

func (s *CatalogService) FeaturedDestinations(ctx context.Context) ([]domain.Destination, error) {
	q := domain.NewListQuery().WhereEq("isFeatured", "1").Sort("name", domain.SortAsc)
	destinations, err := s.destinations.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load destinations: %w", err)
	}
	return destinations, nil
}

func (s *CatalogService) ActivityTypes(ctx context.Context) ([]domain.ActivityType, error) {
	q := domain.NewListQuery().Sort("category", domain.SortAsc)
	activities, err := s.activities.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load activity types: %w", err)
	}
	return activities, nil
}
