package domain

import (
	"context"
	"time"
)

// EventStatusUpcoming is the default status assigned when a created event has none.
const EventStatusUpcoming = "Upcoming"

// Event represents an event owned by its organizer. Category and Location are
// legacy free-text fields kept alongside the normalized CategoryID/LocationID
// foreign keys.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	CategoryID  *string   `json:"category_id"`
	LocationID  *string   `json:"location_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
	Budget      float64   `json:"budget"`
	OrganizerID string    `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventSummary is the list projection of an event: the row plus joined display
// fields (organizer, category name, location "Name - City").
type EventSummary struct {
	*Event
	Organizer    *UserRef `json:"organizer"`
	CategoryName string   `json:"category_name"`
	LocationName string   `json:"location_name"`
}

// EventDetail is the detail projection of an event.
type EventDetail struct {
	*Event
	Organizer *UserRef `json:"organizer"`
	CanEdit   bool     `json:"can_edit"`
}

// EventUpdate holds the fields mutable through the edit flow. All other event
// fields are immutable after creation.
type EventUpdate struct {
	Name        string
	Description string
	Category    string
	Location    string
	CategoryID  *string
	LocationID  *string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	Budget      float64
}

// EventRepository defines the interface for event storage. List methods return
// rows ordered by created_at descending with id as the deterministic tie-break.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Event, error)
	// Update replaces the full owned-row projection of the event.
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines event operations. Every method takes the caller's
// identity explicitly; there is no ambient session state.
type EventService interface {
	// ListVisibleEvents resolves the event set visible to the identity:
	// Admin sees all, Organizer sees own plus invited (deduplicated),
	// Guest sees invited only. Newest first.
	ListVisibleEvents(ctx context.Context, identity Identity) ([]*EventSummary, error)
	CreateEvent(ctx context.Context, identity Identity, event *Event) error
	GetEventDetail(ctx context.Context, identity Identity, eventID string) (*EventDetail, error)
	UpdateEvent(ctx context.Context, identity Identity, eventID string, update EventUpdate) (*Event, error)
	// DeleteEvent removes the event's tasks, then its participants, then the
	// event row. The three deletes are sequential and non-transactional; a
	// failure partway leaves prior steps applied.
	DeleteEvent(ctx context.Context, identity Identity, eventID string) error
}
