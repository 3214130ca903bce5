package domain

import "context"

// Category is a lookup row joined for display only.
// swagger:model Category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Location is a lookup row joined for display only.
// swagger:model Location
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// DisplayName returns "Name - City", or just the name when the city is blank.
func (l *Location) DisplayName() string {
	if l.City == "" {
		return l.Name
	}
	return l.Name + " - " + l.City
}

// LookupRepository defines read access to the category and location tables.
type LookupRepository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	ListLocations(ctx context.Context) ([]*Location, error)
}

// LookupService exposes the lookup tables for form population.
type LookupService interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	ListLocations(ctx context.Context) ([]*Location, error)
}
