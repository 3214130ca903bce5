package services

import (
	"context"
	"sort"
	"time"

	"eventmanagement/internal/domain"
)

// In-memory repository fakes shared by the service tests.

type fakeEventRepo struct {
	events    []*domain.Event
	createErr error
	deleteErr error
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func sortEvents(out []*domain.Event) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	out := append([]*domain.Event{}, f.events...)
	sortEvents(out)
	return out, nil
}

func (f *fakeEventRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	out := []*domain.Event{}
	for _, e := range f.events {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out, nil
}

func (f *fakeEventRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := []*domain.Event{}
	for _, e := range f.events {
		if _, ok := want[e.ID]; ok {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	for i, existing := range f.events {
		if existing.ID == e.ID {
			f.events[i] = e
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, e := range f.events {
		if e.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeParticipantRepo struct {
	participants []*domain.Participant
	createErr    error
	deleteErr    error
}

func (f *fakeParticipantRepo) Create(ctx context.Context, p *domain.Participant) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.participants {
		if existing.EventID == p.EventID && existing.UserID == p.UserID {
			return domain.ErrDuplicateParticipant
		}
	}
	f.participants = append(f.participants, p)
	return nil
}

func (f *fakeParticipantRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Participant, error) {
	for _, p := range f.participants {
		if p.EventID == eventID && p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	out := []*domain.Participant{}
	for _, p := range f.participants {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Participant, error) {
	out := []*domain.Participant{}
	for _, p := range f.participants {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) DeleteByEventID(ctx context.Context, eventID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.participants[:0]
	for _, p := range f.participants {
		if p.EventID != eventID {
			kept = append(kept, p)
		}
	}
	f.participants = kept
	return nil
}

type fakeTaskRepo struct {
	tasks     []*domain.Task
	createErr error
	deleteErr error
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tasks = append(f.tasks, t)
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTaskRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Task, error) {
	out := []*domain.Task{}
	for _, t := range f.tasks {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	for i, existing := range f.tasks {
		if existing.ID == t.ID {
			f.tasks[i] = t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeTaskRepo) DeleteByEventID(ctx context.Context, eventID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.EventID != eventID {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}

type fakeUserRepo struct {
	users     []*domain.User
	createErr error
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrDuplicateUser
		}
	}
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := []*domain.User{}
	for _, u := range f.users {
		if _, ok := want[u.ID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListAll(ctx context.Context) ([]*domain.User, error) {
	return append([]*domain.User{}, f.users...), nil
}

type fakeLookupRepo struct {
	categories []*domain.Category
	locations  []*domain.Location
}

func (f *fakeLookupRepo) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return f.categories, nil
}

func (f *fakeLookupRepo) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	return f.locations, nil
}

type fakeNotificationRepo struct {
	notifications []*domain.EventNotification
	createErr     error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *domain.EventNotification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventNotification, error) {
	out := []*domain.EventNotification{}
	for _, n := range f.notifications {
		if n.EventID == eventID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.EventNotification, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := []*domain.EventNotification{}
	for _, n := range f.notifications {
		if _, ok := want[n.ID]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeRecipientRepo struct {
	recipients    []*domain.NotificationRecipient
	createManyErr error
}

func (f *fakeRecipientRepo) CreateMany(ctx context.Context, recipients []*domain.NotificationRecipient) error {
	if f.createManyErr != nil {
		return f.createManyErr
	}
	f.recipients = append(f.recipients, recipients...)
	return nil
}

func (f *fakeRecipientRepo) GetByID(ctx context.Context, id string) (*domain.NotificationRecipient, error) {
	for _, r := range f.recipients {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRecipientRepo) ListByUserID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.NotificationRecipient, int, error) {
	matching := []*domain.NotificationRecipient{}
	for _, r := range f.recipients {
		if r.UserID == userID {
			matching = append(matching, r)
		}
	}
	total := len(matching)
	offset := params.Offset()
	if offset > total {
		offset = total
	}
	end := offset + params.PageSize
	if end > total {
		end = total
	}
	return matching[offset:end], total, nil
}

func (f *fakeRecipientRepo) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	for _, r := range f.recipients {
		if r.ID == id {
			r.IsRead = true
			r.ReadAt = &readAt
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeEmailService struct {
	sent []*domain.ParticipantInviteEmailData
	err  error
}

func (f *fakeEmailService) SendParticipantInvite(ctx context.Context, data *domain.ParticipantInviteEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
