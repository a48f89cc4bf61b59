package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tourism_api/internal/domain"
)

// TourismService orchestrates validation, uniqueness checks, cross-entity
// existence checks, and rating recomputation for all write paths.
type TourismService struct {
	store  domain.Store
	rating *RatingAggregator
}

func NewTourismService(s domain.Store) *TourismService {
	return &TourismService{store: s, rating: NewRatingAggregator(s)}
}

// CreateAttraction persists a new attraction with rating 0. The unique index
// on name is the authoritative guard; the lookup here is a fast path that
// avoids a doomed insert.
func (s *TourismService) CreateAttraction(ctx context.Context, name, location string, entryFee float64) (domain.Attraction, error) {
	if err := domain.ValidateAttraction(name, location, entryFee); err != nil {
		return domain.Attraction{}, err
	}
	if _, err := s.store.FindAttractionByName(ctx, name); err == nil {
		return domain.Attraction{}, fmt.Errorf("attraction %q already exists: %w", name, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Attraction{}, err
	}
	a := domain.Attraction{
		ID:       uuid.NewString(),
		Name:     name,
		Location: location,
		EntryFee: entryFee,
		Rating:   0,
	}
	if err := s.store.CreateAttraction(ctx, a); err != nil {
		return domain.Attraction{}, err
	}
	return a, nil
}

// CreateVisitor persists a new visitor. Email uniqueness is storage-enforced
// and surfaces as ErrConflict.
func (s *TourismService) CreateVisitor(ctx context.Context, name, email string) (domain.Visitor, error) {
	if err := domain.ValidateVisitor(name, email); err != nil {
		return domain.Visitor{}, err
	}
	v := domain.Visitor{
		ID:                 uuid.NewString(),
		Name:               name,
		Email:              email,
		VisitedAttractions: []string{},
	}
	if err := s.store.CreateVisitor(ctx, v); err != nil {
		return domain.Visitor{}, err
	}
	return v, nil
}

// CreateReview enforces the one-review-per-(attraction, visitor) invariant
// and synchronously recomputes the attraction's rating after the write.
// Order: validate shape, resolve visitor, resolve attraction, check score
// range, duplicate fast path, create, recompute. The composite unique index
// in the store is the authoritative duplicate guard under concurrent writers.
func (s *TourismService) CreateReview(ctx context.Context, attractionID, visitorID string, score int, comment string) (domain.Review, error) {
	if err := domain.ValidateReview(attractionID, visitorID); err != nil {
		return domain.Review{}, err
	}
	if _, err := s.store.GetVisitor(ctx, visitorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Review{}, fmt.Errorf("visitor %s: %w", visitorID, domain.ErrNotFound)
		}
		return domain.Review{}, err
	}
	if _, err := s.store.GetAttraction(ctx, attractionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Review{}, fmt.Errorf("attraction %s: %w", attractionID, domain.ErrNotFound)
		}
		return domain.Review{}, err
	}
	if err := domain.ValidateScore(score); err != nil {
		return domain.Review{}, err
	}
	exists, err := s.store.ReviewExists(ctx, attractionID, visitorID)
	if err != nil {
		return domain.Review{}, err
	}
	if exists {
		return domain.Review{}, fmt.Errorf("visitor %s already reviewed attraction %s: %w", visitorID, attractionID, domain.ErrConflict)
	}
	r := domain.Review{
		ID:           uuid.NewString(),
		AttractionID: attractionID,
		VisitorID:    visitorID,
		Score:        score,
		Comment:      comment,
	}
	if err := s.store.CreateReview(ctx, r); err != nil {
		return domain.Review{}, err
	}
	if err := s.rating.RecomputeRating(ctx, attractionID); err != nil {
		return domain.Review{}, fmt.Errorf("recompute rating for %s: %w", attractionID, err)
	}
	return r, nil
}

// MarkAttractionVisited appends the attraction to the visitor's visited list,
// preserving insertion order, and returns the updated visitor.
func (s *TourismService) MarkAttractionVisited(ctx context.Context, visitorID, attractionID string) (domain.Visitor, error) {
	v, err := s.store.GetVisitor(ctx, visitorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Visitor{}, fmt.Errorf("visitor %s: %w", visitorID, domain.ErrNotFound)
		}
		return domain.Visitor{}, err
	}
	if _, err := s.store.GetAttraction(ctx, attractionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Visitor{}, fmt.Errorf("attraction %s: %w", attractionID, domain.ErrNotFound)
		}
		return domain.Visitor{}, err
	}
	for _, id := range v.VisitedAttractions {
		if id == attractionID {
			return domain.Visitor{}, fmt.Errorf("attraction %s already visited: %w", attractionID, domain.ErrConflict)
		}
	}
	if err := s.store.AddVisitedAttraction(ctx, visitorID, attractionID); err != nil {
		return domain.Visitor{}, err
	}
	return s.store.GetVisitor(ctx, visitorID)
}
