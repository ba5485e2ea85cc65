package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

var destinationTable = table{
	name:    "destinations",
	selects: "id, name, country, description, image_url, highlights, popular_activities, is_featured",
	fields: map[string]column{
		"id":         {name: "id"},
		"name":       {name: "name"},
		"country":    {name: "country"},
		"isFeatured": {name: "is_featured", kind: kindFlag},
	},
}

var activityTypeTable = table{
	name:    "activity_types",
	selects: "id, name, category, icon, description",
	fields: map[string]column{
		"id":       {name: "id"},
		"name":     {name: "name"},
		"category": {name: "category"},
	},
}

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Destination, error) {
	query, args, err := buildList(destinationTable, q)
	if err != nil {
		return nil, err
	}
	destinations := []domain.Destination{}
	if err := r.db.SelectContext(ctx, &destinations, query, args...); err != nil {
		return nil, err
	}
	return destinations, nil
}

type ActivityTypeRepository struct {
	db *sqlx.DB
}

func NewActivityTypeRepo(db *sqlx.DB) *ActivityTypeRepository {
	return &ActivityTypeRepository{db: db}
}

func (r *ActivityTypeRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.ActivityType, error) {
	query, args, err := buildList(activityTypeTable, q)
	if err != nil {
		return nil, err
	}
	activities := []domain.ActivityType{}
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, err
	}
	return activities, nil
}
