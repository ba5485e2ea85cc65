package hosted

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
)

// Collection names on the hosted backend.
const (
	CollectionTripRequests  = "tripRequests"
	CollectionBookings      = "bookings"
	CollectionDestinations  = "destinations"
	CollectionActivityTypes = "activityTypes"
)

type listRequest struct {
	Where   map[string]any  `json:"where,omitempty"`
	OrderBy json.RawMessage `json:"orderBy,omitempty"`
	Limit   int             `json:"limit,omitempty"`
}

type collection[T any] struct {
	client *Client
	name   string
}

func (c collection[T]) path() string {
	return "/api/db/" + url.PathEscape(c.name)
}

func (c collection[T]) list(ctx context.Context, q domain.ListQuery) ([]T, error) {
	orderBy, err := encodeOrderBy(q.OrderBy)
	if err != nil {
		return nil, err
	}
	req := listRequest{Where: q.Where, OrderBy: orderBy, Limit: q.Limit}
	var resp struct {
		Records []T `json:"records"`
	}
	if err := c.client.do(ctx, http.MethodPost, c.path()+"/list", "", req, &resp); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	if resp.Records == nil {
		resp.Records = []T{}
	}
	return resp.Records, nil
}

func (c collection[T]) create(ctx context.Context, record *T) (*T, error) {
	var resp struct {
		Record *T `json:"record"`
	}
	if err := c.client.do(ctx, http.MethodPost, c.path(), "", record, &resp); err != nil {
		return nil, fmt.Errorf("create %s: %w", c.name, err)
	}
	if resp.Record == nil {
		return record, nil
	}
	return resp.Record, nil
}

// encodeOrderBy writes a single sort key as {"field":"dir"} and several as a
// list of such objects, keeping their order.
func encodeOrderBy(orders []domain.Order) (json.RawMessage, error) {
	if len(orders) == 0 {
		return nil, nil
	}
	items := make([]map[string]domain.SortDirection, 0, len(orders))
	for _, o := range orders {
		dir := o.Direction
		if dir != domain.SortDesc {
			dir = domain.SortAsc
		}
		items = append(items, map[string]domain.SortDirection{o.Field: dir})
	}
	var v any = items
	if len(items) == 1 {
		v = items[0]
	}
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode orderBy: %w", err)
	}
	return buf, nil
}

type TripRequestRepository struct {
	records collection[domain.TripRequest]
}

func NewTripRequestRepo(c *Client) *TripRequestRepository {
	return &TripRequestRepository{records: collection[domain.TripRequest]{client: c, name: CollectionTripRequests}}
}

func (r *TripRequestRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.TripRequest, error) {
	return r.records.list(ctx, q)
}

func (r *TripRequestRepository) Create(ctx context.Context, trip *domain.TripRequest) (*domain.TripRequest, error) {
	return r.records.create(ctx, trip)
}

type BookingRepository struct {
	records collection[domain.Booking]
}

func NewBookingRepo(c *Client) *BookingRepository {
	return &BookingRepository{records: collection[domain.Booking]{client: c, name: CollectionBookings}}
}

func (r *BookingRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Booking, error) {
	return r.records.list(ctx, q)
}

type DestinationRepository struct {
	records collection[domain.Destination]
}

func NewDestinationRepo(c *Client) *DestinationRepository {
	return &DestinationRepository{records: collection[domain.Destination]{client: c, name: CollectionDestinations}}
}

func (r *DestinationRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Destination, error) {
	return r.records.list(ctx, q)
}

type ActivityTypeRepository struct {
	records collection[domain.ActivityType]
}

func NewActivityTypeRepo(c *Client) *ActivityTypeRepository {
	return &ActivityTypeRepository{records: collection[domain.ActivityType]{client: c, name: CollectionActivityTypes}}
}

func (r *ActivityTypeRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.ActivityType, error) {
	return r.records.list(ctx, q)
}

var (
	_ ports.TripRequestRepository  = (*TripRequestRepository)(nil)
	_ ports.BookingRepository      = (*BookingRepository)(nil)
	_ ports.DestinationRepository  = (*DestinationRepository)(nil)
	_ ports.ActivityTypeRepository = (*ActivityTypeRepository)(nil)
)
