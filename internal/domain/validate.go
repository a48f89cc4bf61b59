package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// ValidateAttraction checks an attraction payload before any storage
// mutation. Pure; no side effects.
func ValidateAttraction(name, location string, entryFee float64) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(location) == "" {
		return &ValidationError{Field: "location", Reason: "is required"}
	}
	if entryFee < 0 {
		return &ValidationError{Field: "entryFee", Reason: "cannot be negative"}
	}
	return nil
}

// ValidateVisitor checks a visitor payload. Email must have a standard
// local@domain shape.
func ValidateVisitor(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if err := validate.Var(email, "email"); err != nil {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	return nil
}

// ValidateReview checks review references for well-formedness. Existence of
// the referenced entities and the score range are checked later, by the
// domain service, after both references resolve.
func ValidateReview(attractionID, visitorID string) error {
	if attractionID == "" {
		return &ValidationError{Field: "attraction", Reason: "is required"}
	}
	if _, err := uuid.Parse(attractionID); err != nil {
		return &ValidationError{Field: "attraction", Reason: "must be a well-formed id"}
	}
	if visitorID == "" {
		return &ValidationError{Field: "visitor", Reason: "is required"}
	}
	if _, err := uuid.Parse(visitorID); err != nil {
		return &ValidationError{Field: "visitor", Reason: "must be a well-formed id"}
	}
	return nil
}

// ValidateScore bounds a review score to [1, 5].
func ValidateScore(score int) error {
	if score < 1 || score > 5 {
		return &ValidationError{Field: "score", Reason: "must be between 1 and 5"}
	}
	return nil
}
