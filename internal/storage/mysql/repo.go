package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"

	"tourism_api/internal/domain"
)

// MySQL duplicate-entry error; unique-index violations surface with this
// number regardless of which index fired.
const erDupEntry = 1062

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// writeErr translates duplicate-key violations into domain.ErrConflict and
// wraps anything else as a StoreError, so callers never see driver types.
func writeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var me *gomysql.MySQLError
	if errors.As(err, &me) && me.Number == erDupEntry {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return &domain.StoreError{Op: op, Err: err}
}

func readErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return &domain.StoreError{Op: op, Err: err}
}

/********** attractions **********/

func (s *Store) CreateAttraction(ctx context.Context, a domain.Attraction) error {
	_, err := s.db.ExecContext(ctx, insertAttractionSQL, a.ID, a.Name, a.Location, a.EntryFee, a.Rating)
	return writeErr("create attraction", err)
}

func (s *Store) GetAttraction(ctx context.Context, id string) (domain.Attraction, error) {
	return s.scanAttraction(s.db.QueryRowContext(ctx, getAttractionSQL, id), "get attraction")
}

func (s *Store) FindAttractionByName(ctx context.Context, name string) (domain.Attraction, error) {
	return s.scanAttraction(s.db.QueryRowContext(ctx, findAttractionByNameSQL, name), "find attraction by name")
}

func (s *Store) scanAttraction(row *sql.Row, op string) (domain.Attraction, error) {
	var a domain.Attraction
	err := row.Scan(&a.ID, &a.Name, &a.Location, &a.EntryFee, &a.Rating)
	if err != nil {
		return domain.Attraction{}, readErr(op, err)
	}
	return a, nil
}

func (s *Store) TopRatedAttractions(ctx context.Context, limit int) ([]domain.Attraction, error) {
	rows, err := s.db.QueryContext(ctx, topRatedSQL, limit)
	if err != nil {
		return nil, readErr("list top rated", err)
	}
	defer rows.Close()

	var out []domain.Attraction
	for rows.Next() {
		var a domain.Attraction
		if err := rows.Scan(&a.ID, &a.Name, &a.Location, &a.EntryFee, &a.Rating); err != nil {
			return nil, readErr("list top rated", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, readErr("list top rated", err)
	}
	return out, nil
}

func (s *Store) SetRating(ctx context.Context, attractionID string, rating float64) error {
	res, err := s.db.ExecContext(ctx, setRatingSQL, rating, attractionID)
	if err != nil {
		return writeErr("set rating", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// distinguish "unchanged rating" from "no such row"
		var exists bool
		if err := s.db.QueryRowContext(ctx, attractionExistsSQL, attractionID).Scan(&exists); err == nil && !exists {
			return domain.ErrNotFound
		}
	}
	return nil
}

/********** visitors **********/

func (s *Store) CreateVisitor(ctx context.Context, v domain.Visitor) error {
	_, err := s.db.ExecContext(ctx, insertVisitorSQL, v.ID, v.Name, v.Email)
	return writeErr("create visitor", err)
}

func (s *Store) GetVisitor(ctx context.Context, id string) (domain.Visitor, error) {
	var v domain.Visitor
	if err := s.db.QueryRowContext(ctx, getVisitorSQL, id).Scan(&v.ID, &v.Name, &v.Email); err != nil {
		return domain.Visitor{}, readErr("get visitor", err)
	}

	rows, err := s.db.QueryContext(ctx, listVisitedSQL, id)
	if err != nil {
		return domain.Visitor{}, readErr("list visited", err)
	}
	defer rows.Close()

	v.VisitedAttractions = []string{}
	for rows.Next() {
		var aid string
		if err := rows.Scan(&aid); err != nil {
			return domain.Visitor{}, readErr("list visited", err)
		}
		v.VisitedAttractions = append(v.VisitedAttractions, aid)
	}
	if err := rows.Err(); err != nil {
		return domain.Visitor{}, readErr("list visited", err)
	}
	return v, nil
}

func (s *Store) FindVisitorByEmail(ctx context.Context, email string) (domain.Visitor, error) {
	var v domain.Visitor
	if err := s.db.QueryRowContext(ctx, findVisitorByEmailSQL, email).Scan(&v.ID, &v.Name, &v.Email); err != nil {
		return domain.Visitor{}, readErr("find visitor by email", err)
	}
	return v, nil
}

func (s *Store) ListVisitors(ctx context.Context) ([]domain.Visitor, error) {
	rows, err := s.db.QueryContext(ctx, listVisitorsSQL)
	if err != nil {
		return nil, readErr("list visitors", err)
	}
	defer rows.Close()

	var out []domain.Visitor
	for rows.Next() {
		var v domain.Visitor
		if err := rows.Scan(&v.ID, &v.Name, &v.Email); err != nil {
			return nil, readErr("list visitors", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, readErr("list visitors", err)
	}
	return out, nil
}

func (s *Store) AddVisitedAttraction(ctx context.Context, visitorID, attractionID string) error {
	_, err := s.db.ExecContext(ctx, insertVisitedSQL, visitorID, attractionID)
	return writeErr("add visited attraction", err)
}

/********** reviews **********/

func (s *Store) CreateReview(ctx context.Context, r domain.Review) error {
	var comment any
	if r.Comment != "" {
		comment = r.Comment
	}
	_, err := s.db.ExecContext(ctx, insertReviewSQL, r.ID, r.AttractionID, r.VisitorID, r.Score, comment)
	return writeErr("create review", err)
}

func (s *Store) ReviewExists(ctx context.Context, attractionID, visitorID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, reviewExistsSQL, attractionID, visitorID).Scan(&exists)
	if err != nil {
		return false, readErr("review exists", err)
	}
	return exists, nil
}

func (s *Store) ReviewScores(ctx context.Context, attractionID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, reviewScoresSQL, attractionID)
	if err != nil {
		return nil, readErr("review scores", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var sc int
		if err := rows.Scan(&sc); err != nil {
			return nil, readErr("review scores", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, readErr("review scores", err)
	}
	return out, nil
}

func (s *Store) CountReviewsByVisitor(ctx context.Context, visitorID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countReviewsByVisitorSQL, visitorID).Scan(&n); err != nil {
		return 0, readErr("count reviews by visitor", err)
	}
	return n, nil
}
