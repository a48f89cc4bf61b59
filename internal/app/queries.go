package app

import (
	"context"

	"tourism_api/internal/domain"
)

// DefaultTopRatedLimit caps the top-rated listing when the caller does not
// ask for a specific size.
const DefaultTopRatedLimit = 5

// QueryService serves the read paths. Counts and ratings always come from
// the live store; nothing here is cached.
type QueryService struct {
	store domain.Store
}

func NewQueryService(s domain.Store) *QueryService {
	return &QueryService{store: s}
}

// TopRatedAttractions returns attractions ordered by rating descending,
// ties broken by insertion order, truncated to limit.
func (s *QueryService) TopRatedAttractions(ctx context.Context, limit int) ([]domain.Attraction, error) {
	if limit <= 0 {
		limit = DefaultTopRatedLimit
	}
	return s.store.TopRatedAttractions(ctx, limit)
}

// VisitorActivity is the per-visitor review-count read model.
type VisitorActivity struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	ReviewedAttractions int    `json:"reviewedAttractions"`
}

// VisitorActivity counts, for every visitor, the reviews referencing them.
func (s *QueryService) VisitorActivity(ctx context.Context) ([]VisitorActivity, error) {
	visitors, err := s.store.ListVisitors(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]VisitorActivity, 0, len(visitors))
	for _, v := range visitors {
		n, err := s.store.CountReviewsByVisitor(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, VisitorActivity{Name: v.Name, Email: v.Email, ReviewedAttractions: n})
	}
	return out, nil
}
