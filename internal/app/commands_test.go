package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tourism_api/internal/app"
	"tourism_api/internal/domain"
)

// ---- fake store ----

type fakeStore struct {
	attractions []domain.Attraction // insertion order
	visitors    []domain.Visitor
	reviews     []domain.Review
	visited     map[string][]string // visitorID -> attraction IDs, in order

	ratingWrites int // SetRating calls, to assert recompute (non-)invocation
}

func newFakeStore() *fakeStore {
	return &fakeStore{visited: map[string][]string{}}
}

func (f *fakeStore) CreateAttraction(ctx context.Context, a domain.Attraction) error {
	for _, x := range f.attractions {
		if x.Name == a.Name {
			return fmt.Errorf("attractions.name: %w", domain.ErrConflict)
		}
	}
	f.attractions = append(f.attractions, a)
	return nil
}

func (f *fakeStore) GetAttraction(ctx context.Context, id string) (domain.Attraction, error) {
	for _, x := range f.attractions {
		if x.ID == id {
			return x, nil
		}
	}
	return domain.Attraction{}, domain.ErrNotFound
}

func (f *fakeStore) FindAttractionByName(ctx context.Context, name string) (domain.Attraction, error) {
	for _, x := range f.attractions {
		if x.Name == name {
			return x, nil
		}
	}
	return domain.Attraction{}, domain.ErrNotFound
}

func (f *fakeStore) TopRatedAttractions(ctx context.Context, limit int) ([]domain.Attraction, error) {
	// rating desc, insertion order as tie-break; insertion sort keeps it stable
	sorted := append([]domain.Attraction(nil), f.attractions...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Rating > sorted[j-1].Rating; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (f *fakeStore) SetRating(ctx context.Context, attractionID string, rating float64) error {
	f.ratingWrites++
	for i := range f.attractions {
		if f.attractions[i].ID == attractionID {
			f.attractions[i].Rating = rating
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeStore) CreateVisitor(ctx context.Context, v domain.Visitor) error {
	for _, x := range f.visitors {
		if x.Email == v.Email {
			return fmt.Errorf("visitors.email: %w", domain.ErrConflict)
		}
	}
	f.visitors = append(f.visitors, v)
	return nil
}

func (f *fakeStore) GetVisitor(ctx context.Context, id string) (domain.Visitor, error) {
	for _, x := range f.visitors {
		if x.ID == id {
			x.VisitedAttractions = append([]string{}, f.visited[id]...)
			return x, nil
		}
	}
	return domain.Visitor{}, domain.ErrNotFound
}

func (f *fakeStore) FindVisitorByEmail(ctx context.Context, email string) (domain.Visitor, error) {
	for _, x := range f.visitors {
		if x.Email == email {
			return x, nil
		}
	}
	return domain.Visitor{}, domain.ErrNotFound
}

func (f *fakeStore) ListVisitors(ctx context.Context) ([]domain.Visitor, error) {
	return append([]domain.Visitor(nil), f.visitors...), nil
}

func (f *fakeStore) AddVisitedAttraction(ctx context.Context, visitorID, attractionID string) error {
	for _, id := range f.visited[visitorID] {
		if id == attractionID {
			return fmt.Errorf("visitor_attractions: %w", domain.ErrConflict)
		}
	}
	f.visited[visitorID] = append(f.visited[visitorID], attractionID)
	return nil
}

func (f *fakeStore) CreateReview(ctx context.Context, r domain.Review) error {
	for _, x := range f.reviews {
		if x.AttractionID == r.AttractionID && x.VisitorID == r.VisitorID {
			return fmt.Errorf("reviews pair: %w", domain.ErrConflict)
		}
	}
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeStore) ReviewExists(ctx context.Context, attractionID, visitorID string) (bool, error) {
	for _, x := range f.reviews {
		if x.AttractionID == attractionID && x.VisitorID == visitorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ReviewScores(ctx context.Context, attractionID string) ([]int, error) {
	var out []int
	for _, x := range f.reviews {
		if x.AttractionID == attractionID {
			out = append(out, x.Score)
		}
	}
	return out, nil
}

func (f *fakeStore) CountReviewsByVisitor(ctx context.Context, visitorID string) (int, error) {
	n := 0
	for _, x := range f.reviews {
		if x.VisitorID == visitorID {
			n++
		}
	}
	return n, nil
}

// ---- helpers ----

func mustAttraction(t *testing.T, s *app.TourismService, name string) domain.Attraction {
	t.Helper()
	a, err := s.CreateAttraction(context.Background(), name, "Testville", 10)
	if err != nil {
		t.Fatalf("CreateAttraction(%s): %v", name, err)
	}
	return a
}

func mustVisitor(t *testing.T, s *app.TourismService, name, email string) domain.Visitor {
	t.Helper()
	v, err := s.CreateVisitor(context.Background(), name, email)
	if err != nil {
		t.Fatalf("CreateVisitor(%s): %v", email, err)
	}
	return v
}

// ---- tests ----

func TestCreateAttraction_StartsUnrated(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)

	a, err := svc.CreateAttraction(context.Background(), "Eiffel Tower", "Paris", 25)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if a.Rating != 0 {
		t.Fatalf("new attraction rating = %v, want 0", a.Rating)
	}
	if a.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreateAttraction_DuplicateName(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)

	mustAttraction(t, svc, "Louvre")
	_, err := svc.CreateAttraction(context.Background(), "Louvre", "Paris", 17)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(st.attractions) != 1 {
		t.Fatalf("attraction count = %d, want 1", len(st.attractions))
	}
}

func TestCreateAttraction_Invalid(t *testing.T) {
	svc := app.NewTourismService(newFakeStore())

	_, err := svc.CreateAttraction(context.Background(), "", "Paris", 25)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCreateVisitor_DuplicateEmail(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)

	mustVisitor(t, svc, "Ana", "ana@example.com")
	_, err := svc.CreateVisitor(context.Background(), "Other Ana", "ana@example.com")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateReview_RunningMean(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)
	a := mustAttraction(t, svc, "Colosseum")

	scores := []int{4, 5, 3}
	want := []float64{4, 4.5, 4}
	for i, sc := range scores {
		v := mustVisitor(t, svc, "V", fmt.Sprintf("v%d@example.com", i))
		if _, err := svc.CreateReview(context.Background(), a.ID, v.ID, sc, ""); err != nil {
			t.Fatalf("CreateReview #%d: %v", i, err)
		}
		got, err := st.GetAttraction(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("GetAttraction: %v", err)
		}
		if got.Rating != want[i] {
			t.Fatalf("after review %d: rating = %v, want %v", i+1, got.Rating, want[i])
		}
	}
}

func TestCreateReview_DuplicatePair(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)
	a := mustAttraction(t, svc, "Prado")
	v := mustVisitor(t, svc, "Ana", "ana@example.com")

	if _, err := svc.CreateReview(context.Background(), a.ID, v.ID, 5, "great"); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := svc.CreateReview(context.Background(), a.ID, v.ID, 1, "changed my mind")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(st.reviews) != 1 {
		t.Fatalf("review count = %d, want 1", len(st.reviews))
	}
	got, _ := st.GetAttraction(context.Background(), a.ID)
	if got.Rating != 5 {
		t.Fatalf("rating changed by rejected review: %v", got.Rating)
	}
}

func TestCreateReview_MissingReferences(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)
	a := mustAttraction(t, svc, "Prado")
	v := mustVisitor(t, svc, "Ana", "ana@example.com")

	ghost := "99999999-9999-4999-8999-999999999999"
	if _, err := svc.CreateReview(context.Background(), a.ID, ghost, 4, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown visitor: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.CreateReview(context.Background(), ghost, v.ID, 4, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown attraction: expected ErrNotFound, got %v", err)
	}
	if len(st.reviews) != 0 {
		t.Fatalf("review persisted despite missing reference")
	}
}

func TestCreateReview_ScoreOutOfRange(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)
	a := mustAttraction(t, svc, "Prado")
	v := mustVisitor(t, svc, "Ana", "ana@example.com")

	for _, score := range []int{0, 6} {
		_, err := svc.CreateReview(context.Background(), a.ID, v.ID, score, "")
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("score %d: expected ValidationError, got %v", score, err)
		}
	}
	if len(st.reviews) != 0 {
		t.Fatalf("review persisted despite invalid score")
	}
	if st.ratingWrites != 0 {
		t.Fatalf("rating recompute triggered for rejected review")
	}
}

func TestCreateReview_MissingVisitorBeforeScoreRange(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)
	a := mustAttraction(t, svc, "Prado")

	// Both defects at once: the unresolved visitor must win over the
	// out-of-range score.
	ghost := "99999999-9999-4999-8999-999999999999"
	_, err := svc.CreateReview(context.Background(), a.ID, ghost, 0, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkAttractionVisited(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)
	a1 := mustAttraction(t, svc, "Alhambra")
	a2 := mustAttraction(t, svc, "Sagrada Familia")
	v := mustVisitor(t, svc, "Ana", "ana@example.com")

	if _, err := svc.MarkAttractionVisited(context.Background(), v.ID, a1.ID); err != nil {
		t.Fatalf("first visit: %v", err)
	}
	got, err := svc.MarkAttractionVisited(context.Background(), v.ID, a2.ID)
	if err != nil {
		t.Fatalf("second visit: %v", err)
	}
	if len(got.VisitedAttractions) != 2 || got.VisitedAttractions[0] != a1.ID || got.VisitedAttractions[1] != a2.ID {
		t.Fatalf("visited order = %v, want [%s %s]", got.VisitedAttractions, a1.ID, a2.ID)
	}
}

func TestMarkAttractionVisited_AlreadyVisited(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)
	a := mustAttraction(t, svc, "Alhambra")
	v := mustVisitor(t, svc, "Ana", "ana@example.com")

	if _, err := svc.MarkAttractionVisited(context.Background(), v.ID, a.ID); err != nil {
		t.Fatalf("first visit: %v", err)
	}
	_, err := svc.MarkAttractionVisited(context.Background(), v.ID, a.ID)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if n := len(st.visited[v.ID]); n != 1 {
		t.Fatalf("visited length = %d, want 1", n)
	}
}

func TestMarkAttractionVisited_MissingEntities(t *testing.T) {
	st := newFakeStore()
	svc := app.NewTourismService(st)
	a := mustAttraction(t, svc, "Alhambra")
	v := mustVisitor(t, svc, "Ana", "ana@example.com")

	ghost := "99999999-9999-4999-8999-999999999999"
	if _, err := svc.MarkAttractionVisited(context.Background(), ghost, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown visitor: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.MarkAttractionVisited(context.Background(), v.ID, ghost); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown attraction: expected ErrNotFound, got %v", err)
	}
}
