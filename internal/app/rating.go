package app

import (
	"context"

	"tourism_api/internal/domain"
)

// RatingAggregator keeps an attraction's rating equal to the arithmetic mean
// of the review scores currently persisted for it.
type RatingAggregator struct {
	store domain.Store
}

func NewRatingAggregator(s domain.Store) *RatingAggregator {
	return &RatingAggregator{store: s}
}

// RecomputeRating reads every review for the attraction and writes the mean
// score back. Zero reviews resets the rating to 0 rather than leaving a
// stale value. Idempotent over an unchanged review set.
func (a *RatingAggregator) RecomputeRating(ctx context.Context, attractionID string) error {
	scores, err := a.store.ReviewScores(ctx, attractionID)
	if err != nil {
		return err
	}
	var rating float64
	if len(scores) > 0 {
		sum := 0
		for _, s := range scores {
			sum += s
		}
		rating = float64(sum) / float64(len(scores))
	}
	return a.store.SetRating(ctx, attractionID, rating)
}
