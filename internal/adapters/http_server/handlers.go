// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tourism_api/internal/adapters/observability"
	"tourism_api/internal/app"
	"tourism_api/internal/domain"
)

type Handlers struct {
	C *app.TourismService
	Q *app.QueryService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/api", func(r chi.Router) {
		r.Post("/attractions", h.createAttraction)
		r.Get("/attractions/top-rated", h.topRatedAttractions)
		r.Post("/visitors", h.createVisitor)
		r.Get("/visitors/activity", h.visitorActivity)
		r.Post("/reviews", h.createReview)
		r.Post("/visitors/{visitorId}/visited-attraction", h.markVisited)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto the API contract: validation and
// conflict are client errors (400), missing references are 404, and
// everything else is an opaque 500.
func writeError(w http.ResponseWriter, err error, conflictEntity string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "Bad Request", ve.Error())
	case errors.Is(err, domain.ErrConflict):
		observability.ObserveConflict(conflictEntity)
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable serves a GET payload with a weak ETag and honors
// If-None-Match.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "request body must be valid JSON")
		return false
	}
	return true
}

/********** attractions **********/

type createAttractionRequest struct {
	Name     string   `json:"name"`
	Location string   `json:"location"`
	EntryFee *float64 `json:"entryFee"`
}

func (h *Handlers) createAttraction(w http.ResponseWriter, r *http.Request) {
	var req createAttractionRequest
	if !decode(w, r, &req) {
		return
	}
	if req.EntryFee == nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid entryFee: is required")
		return
	}
	a, err := h.C.CreateAttraction(r.Context(), req.Name, req.Location, *req.EntryFee)
	if err != nil {
		writeError(w, err, "attraction")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handlers) topRatedAttractions(w http.ResponseWriter, r *http.Request) {
	top, err := h.Q.TopRatedAttractions(r.Context(), app.DefaultTopRatedLimit)
	if err != nil {
		writeError(w, err, "")
		return
	}
	if top == nil {
		top = []domain.Attraction{}
	}
	writeCacheable(w, r, top)
}

/********** visitors **********/

type createVisitorRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handlers) createVisitor(w http.ResponseWriter, r *http.Request) {
	var req createVisitorRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := h.C.CreateVisitor(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, err, "visitor")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handlers) visitorActivity(w http.ResponseWriter, r *http.Request) {
	act, err := h.Q.VisitorActivity(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeCacheable(w, r, act)
}

/********** reviews **********/

type createReviewRequest struct {
	Attraction string `json:"attraction"`
	Visitor    string `json:"visitor"`
	Score      *int   `json:"score"`
	Comment    string `json:"comment"`
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Score == nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid score: is required")
		return
	}
	rev, err := h.C.CreateReview(r.Context(), req.Attraction, req.Visitor, *req.Score, req.Comment)
	if err != nil {
		writeError(w, err, "review")
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

/********** visited attractions **********/

type markVisitedRequest struct {
	Attraction string `json:"attraction"`
}

func (h *Handlers) markVisited(w http.ResponseWriter, r *http.Request) {
	var req markVisitedRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Attraction == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid attraction: is required")
		return
	}
	visitorID := chi.URLParam(r, "visitorId")
	v, err := h.C.MarkAttractionVisited(r.Context(), visitorID, req.Attraction)
	if err != nil {
		writeError(w, err, "visited")
		return
	}
	writeJSON(w, http.StatusOK, v)
}
