package domain

// Attraction is a point of interest. Rating is derived from the live review
// set and is never accepted from a client.
type Attraction struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	EntryFee float64 `json:"entryFee"`
	Rating   float64 `json:"rating"`
}
