package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Seed fixtures are loosely-typed JSON so files written by hand or exported
// from other tools keep working; the helpers below coerce the common field
// spellings into the shapes the domain service expects. Reviews and visited
// lists reference attractions by name and visitors by email, since IDs are
// generated at insert time.

type AttractionSeed struct {
	Name     string
	Location string
	EntryFee float64
}

type VisitorSeed struct {
	Name    string
	Email   string
	Visited []string // attraction names, in order
}

type ReviewSeed struct {
	Attraction string // attraction name
	Visitor    string // visitor email
	Score      int
	Comment    string
}

type Fixtures struct {
	Attractions []AttractionSeed
	Visitors    []VisitorSeed
	Reviews     []ReviewSeed
}

/********** field aliases **********/

var seedAliases = map[string][]string{
	"name":       {"name", "attractionName", "title"},
	"location":   {"location", "city", "place"},
	"entryFee":   {"entryFee", "entry_fee", "fee", "price"},
	"email":      {"email", "mail"},
	"visited":    {"visited", "visitedAttractions", "visited_attractions"},
	"attraction": {"attraction", "attractionName", "attraction_name"},
	"visitor":    {"visitor", "visitorEmail", "visitor_email", "email"},
	"score":      {"score", "rating", "stars"},
	"comment":    {"comment", "text", "review"},
}

/********** tiny helpers **********/

func seedStr(m map[string]any, key string) string {
	for _, k := range seedAliases[key] {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// seedFloat accepts float64, int, or numeric strings like "12.50".
func seedFloat(m map[string]any, key string) float64 {
	for _, k := range seedAliases[key] {
		switch v := m[k].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func seedInt(m map[string]any, key string) int {
	return int(seedFloat(m, key))
}

func seedStrList(m map[string]any, key string) []string {
	for _, k := range seedAliases[key] {
		raw, ok := m[k].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, e := range raw {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

/********** parsing **********/

// ParseFixtures decodes a seed file. Entries missing their identifying field
// are rejected outright so a typo does not silently shrink the data set.
func ParseFixtures(data []byte) (Fixtures, error) {
	var raw struct {
		Attractions []map[string]any `json:"attractions"`
		Visitors    []map[string]any `json:"visitors"`
		Reviews     []map[string]any `json:"reviews"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}

	var fx Fixtures
	for i, m := range raw.Attractions {
		a := AttractionSeed{
			Name:     seedStr(m, "name"),
			Location: seedStr(m, "location"),
			EntryFee: seedFloat(m, "entryFee"),
		}
		if a.Name == "" {
			return Fixtures{}, fmt.Errorf("attractions[%d]: missing name", i)
		}
		fx.Attractions = append(fx.Attractions, a)
	}
	for i, m := range raw.Visitors {
		v := VisitorSeed{
			Name:    seedStr(m, "name"),
			Email:   seedStr(m, "email"),
			Visited: seedStrList(m, "visited"),
		}
		if v.Email == "" {
			return Fixtures{}, fmt.Errorf("visitors[%d]: missing email", i)
		}
		fx.Visitors = append(fx.Visitors, v)
	}
	for i, m := range raw.Reviews {
		r := ReviewSeed{
			Attraction: seedStr(m, "attraction"),
			Visitor:    seedStr(m, "visitor"),
			Score:      seedInt(m, "score"),
			Comment:    seedStr(m, "comment"),
		}
		if r.Attraction == "" || r.Visitor == "" {
			return Fixtures{}, fmt.Errorf("reviews[%d]: missing attraction or visitor reference", i)
		}
		fx.Reviews = append(fx.Reviews, r)
	}
	return fx, nil
}
