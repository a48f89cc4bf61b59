package domain

// Review is a scored opinion; at most one exists per (attraction, visitor)
// pair.
type Review struct {
	ID           string `json:"id"`
	AttractionID string `json:"attraction"`
	VisitorID    string `json:"visitor"`
	Score        int    `json:"score"`
	Comment      string `json:"comment,omitempty"`
}
