package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventmanagement/internal/domain"
)

const eventCols = "id, name, description, category, location, category_id, location_id, start_date, end_date, status, budget, organizer_id, created_at"

// eventOrder keeps list ordering deterministic: newest first, id breaks ties
// on equal timestamps.
const eventOrder = " ORDER BY created_at DESC, id"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func scanEvent(scan func(dest ...any) error) (*domain.Event, error) {
	e := &domain.Event{}
	var catIDNull, locIDNull sql.NullString
	err := scan(
		&e.ID, &e.Name, &e.Description, &e.Category, &e.Location,
		&catIDNull, &locIDNull, &e.StartDate, &e.EndDate,
		&e.Status, &e.Budget, &e.OrganizerID, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if catIDNull.Valid {
		e.CategoryID = &catIDNull.String
	}
	if locIDNull.Valid {
		e.LocationID = &locIDNull.String
	}
	return e, nil
}

func (r *eventRepository) queryEvents(ctx context.Context, conds ...cond) ([]*domain.Event, error) {
	where, args := buildWhere(conds...)
	rows, err := r.DB.QueryContext(ctx, "SELECT "+eventCols+" FROM events"+where+eventOrder, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (` + eventCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.Description, e.Category, e.Location,
		e.CategoryID, e.LocationID, e.StartDate, e.EndDate,
		e.Status, e.Budget, e.OrganizerID, e.CreatedAt,
	)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+eventCols+" FROM events WHERE id = $1", id)
	e, err := scanEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return r.queryEvents(ctx)
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return r.queryEvents(ctx, eq("organizer_id", organizerID))
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return []*domain.Event{}, nil
	}
	return r.queryEvents(ctx, in("id", ids))
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, category = $3, location = $4,
		    category_id = $5, location_id = $6, start_date = $7, end_date = $8,
		    status = $9, budget = $10
		WHERE id = $11
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Name, e.Description, e.Category, e.Location,
		e.CategoryID, e.LocationID, e.StartDate, e.EndDate,
		e.Status, e.Budget, e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
