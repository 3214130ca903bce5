package postgres

import (
	"context"
	"database/sql"

	"eventmanagement/internal/domain"
)

type lookupRepository struct {
	DB *sql.DB
}

func NewLookupRepository(db *sql.DB) domain.LookupRepository {
	return &lookupRepository{DB: db}
}

func (r *lookupRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *lookupRepository) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, city FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	locations := make([]*domain.Location, 0)
	for rows.Next() {
		l := &domain.Location{}
		if err := rows.Scan(&l.ID, &l.Name, &l.City); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
