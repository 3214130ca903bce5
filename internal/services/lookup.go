package services

import (
	"context"
	"fmt"
	"time"

	"eventmanagement/internal/domain"
)

type lookupService struct {
	lookupRepo     domain.LookupRepository
	contextTimeout time.Duration
}

func NewLookupService(lookupRepo domain.LookupRepository, timeout time.Duration) domain.LookupService {
	return &lookupService{lookupRepo: lookupRepo, contextTimeout: timeout}
}

func (s *lookupService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	categories, err := s.lookupRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *lookupService) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	locations, err := s.lookupRepo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}
