package domain

// Visitor may author reviews and accumulate visited attractions.
// VisitedAttractions holds attraction IDs in insertion order with unique
// membership.
type Visitor struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	VisitedAttractions []string `json:"visitedAttractions"`
}
