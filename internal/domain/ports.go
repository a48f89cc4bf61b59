package domain

import "context"

// Store is the persistence port consumed by the application services.
// Implementations must enforce the unique indexes (attraction name, visitor
// email, (attraction, visitor) review pair, (visitor, attraction) visited
// pair) atomically and surface violations as ErrConflict. Missing rows
// surface as ErrNotFound; anything else wraps into StoreError.
type Store interface {
	// Attractions
	CreateAttraction(ctx context.Context, a Attraction) error
	GetAttraction(ctx context.Context, id string) (Attraction, error)
	FindAttractionByName(ctx context.Context, name string) (Attraction, error)
	TopRatedAttractions(ctx context.Context, limit int) ([]Attraction, error)
	SetRating(ctx context.Context, attractionID string, rating float64) error

	// Visitors
	CreateVisitor(ctx context.Context, v Visitor) error
	GetVisitor(ctx context.Context, id string) (Visitor, error)
	FindVisitorByEmail(ctx context.Context, email string) (Visitor, error)
	ListVisitors(ctx context.Context) ([]Visitor, error)
	AddVisitedAttraction(ctx context.Context, visitorID, attractionID string) error

	// Reviews
	CreateReview(ctx context.Context, r Review) error
	ReviewExists(ctx context.Context, attractionID, visitorID string) (bool, error)
	ReviewScores(ctx context.Context, attractionID string) ([]int, error)
	CountReviewsByVisitor(ctx context.Context, visitorID string) (int, error)
}
