package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventmanagement/internal/authz"
	"eventmanagement/internal/domain"
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	taskRepo        domain.TaskRepository
	userRepo        domain.UserRepository
	lookupRepo      domain.LookupRepository
	contextTimeout  time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	taskRepo domain.TaskRepository,
	userRepo domain.UserRepository,
	lookupRepo domain.LookupRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		taskRepo:        taskRepo,
		userRepo:        userRepo,
		lookupRepo:      lookupRepo,
		contextTimeout:  timeout,
	}
}

// resolveVisibleEvents returns the event rows the identity may see, newest
// first. Admins see everything, organizers their own events plus events they
// participate in, guests only events they participate in.
func (s *eventService) resolveVisibleEvents(ctx context.Context, identity domain.Identity) ([]*domain.Event, error) {
	if identity.Role == domain.RoleAdmin {
		return s.eventRepo.ListAll(ctx)
	}

	var events []*domain.Event
	seen := make(map[string]struct{})

	if identity.Role == domain.RoleOrganizer {
		owned, err := s.eventRepo.ListByOrganizerID(ctx, identity.UserID)
		if err != nil {
			return nil, fmt.Errorf("list owned events: %w", err)
		}
		for _, e := range owned {
			seen[e.ID] = struct{}{}
			events = append(events, e)
		}
	}

	participations, err := s.participantRepo.ListByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	ids := make([]string, 0, len(participations))
	for _, p := range participations {
		if _, ok := seen[p.EventID]; ok {
			continue
		}
		seen[p.EventID] = struct{}{}
		ids = append(ids, p.EventID)
	}
	invited, err := s.eventRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list invited events: %w", err)
	}
	events = append(events, invited...)

	sort.Slice(events, func(i, j int) bool {
		if !events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].CreatedAt.After(events[j].CreatedAt)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func (s *eventService) ListVisibleEvents(ctx context.Context, identity domain.Identity) ([]*domain.EventSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !authz.CanViewEvents(identity.Role) {
		return nil, domain.ErrForbidden
	}

	events, err := s.resolveVisibleEvents(ctx, identity)
	if err != nil {
		return nil, err
	}

	organizerIDs := make([]string, 0, len(events))
	seen := make(map[string]struct{})
	for _, e := range events {
		if _, ok := seen[e.OrganizerID]; ok {
			continue
		}
		seen[e.OrganizerID] = struct{}{}
		organizerIDs = append(organizerIDs, e.OrganizerID)
	}
	organizers, err := s.userRepo.ListByIDs(ctx, organizerIDs)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	organizerByID := make(map[string]*domain.User, len(organizers))
	for _, u := range organizers {
		organizerByID[u.ID] = u
	}

	categories, err := s.lookupRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categoryByID := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}
	locations, err := s.lookupRepo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	locationByID := make(map[string]*domain.Location, len(locations))
	for _, l := range locations {
		locationByID[l.ID] = l
	}

	summaries := make([]*domain.EventSummary, 0, len(events))
	for _, e := range events {
		summary := &domain.EventSummary{
			Event:        e,
			CategoryName: e.Category,
			LocationName: e.Location,
		}
		if u, ok := organizerByID[e.OrganizerID]; ok {
			summary.Organizer = u.Ref()
		}
		if e.CategoryID != nil {
			if c, ok := categoryByID[*e.CategoryID]; ok {
				summary.CategoryName = c.Name
			}
		}
		if e.LocationID != nil {
			if l, ok := locationByID[*e.LocationID]; ok {
				summary.LocationName = l.DisplayName()
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *eventService) CreateEvent(ctx context.Context, identity domain.Identity, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !authz.CanCreateEvent(identity.Role) {
		return domain.ErrForbidden
	}

	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
	}
	if event.EndDate.Before(event.StartDate) {
		return fmt.Errorf("%w: end date precedes start date", domain.ErrInvalidInput)
	}

	event.ID = uuid.NewString()
	event.OrganizerID = identity.UserID
	event.CreatedAt = time.Now().UTC()
	if event.Status == "" {
		event.Status = domain.EventStatusUpcoming
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// canViewEvent reports whether the identity may see the event at all: admins
// and the organizer always, everyone else only through a participant row.
func (s *eventService) canViewEvent(ctx context.Context, identity domain.Identity, event *domain.Event) (bool, error) {
	if identity.Role == domain.RoleAdmin || event.OrganizerID == identity.UserID {
		return true, nil
	}
	_, err := s.participantRepo.GetByEventAndUser(ctx, event.ID, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get participant: %w", err)
	}
	return true, nil
}

func (s *eventService) GetEventDetail(ctx context.Context, identity domain.Identity, eventID string) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	visible, err := s.canViewEvent(ctx, identity, event)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.ErrForbidden
	}

	detail := &domain.EventDetail{
		Event:   event,
		CanEdit: authz.CanEditEvent(identity.Role, event.OrganizerID == identity.UserID),
	}
	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err == nil {
		detail.Organizer = organizer.Ref()
	}
	return detail, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, identity domain.Identity, eventID string, update domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !authz.CanEditEvent(identity.Role, event.OrganizerID == identity.UserID) {
		return nil, domain.ErrForbidden
	}

	update.Name = strings.TrimSpace(update.Name)
	if update.Name == "" {
		return nil, fmt.Errorf("%w: event name is required", domain.ErrInvalidInput)
	}
	if update.EndDate.Before(update.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", domain.ErrInvalidInput)
	}

	event.Name = update.Name
	event.Description = update.Description
	event.Category = update.Category
	event.Location = update.Location
	event.CategoryID = update.CategoryID
	event.LocationID = update.LocationID
	event.StartDate = update.StartDate
	event.EndDate = update.EndDate
	event.Status = update.Status
	event.Budget = update.Budget

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, identity domain.Identity, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !authz.CanDeleteEvent(identity.Role, event.OrganizerID == identity.UserID) {
		return domain.ErrForbidden
	}

	// Children first so a failure never orphans task or participant rows.
	if err := s.taskRepo.DeleteByEventID(ctx, eventID); err != nil {
		return fmt.Errorf("delete event tasks: %w", err)
	}
	if err := s.participantRepo.DeleteByEventID(ctx, eventID); err != nil {
		return fmt.Errorf("delete event participants: %w", err)
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
