// Package chi exposes the resolve pipeline over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinewise/internal/domain"
	"github.com/kailas-cloud/dinewise/internal/domain/aggregate"
	"github.com/kailas-cloud/dinewise/internal/domain/hit"
	healthuc "github.com/kailas-cloud/dinewise/internal/usecase/health"
	resolveuc "github.com/kailas-cloud/dinewise/internal/usecase/resolve"
)

const maxQueryLen = 2000

// Server handles the HTTP API.
type Server struct {
	resolve *resolveuc.Service
	health  *healthuc.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(resolve *resolveuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{resolve: resolve, health: health, logger: logger}
}

// Mount registers the API routes on a chi router.
func (s *Server) Mount(r chi.Router) {
	r.Post("/api/v1/resolve", s.Resolve)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// --- DTOs ---

// ResolveRequest is the POST /api/v1/resolve body.
type ResolveRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}

// ResolveResponse is the ranked answer for one query.
type ResolveResponse struct {
	Query    string       `json:"query"`
	Intent   IntentResult `json:"intent"`
	Entities []Entity     `json:"entities"`
	Empty    bool         `json:"empty"`
	// BookingRedirect tells the caller to hand the user to the
	// reservation flow instead of presenting search results only.
	BookingRedirect bool `json:"booking_redirect,omitempty"`
	// Suggestion carries a human hint for the empty outcome.
	Suggestion string `json:"suggestion,omitempty"`
}

// IntentResult describes how the query was classified.
type IntentResult struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	Adjusted   bool    `json:"adjusted,omitempty"`
}

// Entity is one ranked venue with its matched sub-items.
type Entity struct {
	ID         string            `json:"id"`
	Name       string            `json:"name,omitempty"`
	Score      float64           `json:"score"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Items      []Item            `json:"items,omitempty"`
}

// Item is one matched sub-item (dish, table, service or layout).
type Item struct {
	Type       string            `json:"type"`
	Name       string            `json:"name,omitempty"`
	Score      float64           `json:"score"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeInternalError    = "internal_error"
)

// Resolve handles POST /api/v1/resolve.
func (s *Server) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Query) > maxQueryLen {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "query too long")
		return
	}

	result, err := s.resolve.Resolve(r.Context(), req.Query, req.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultToResponse(result))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, CodeValidationFailed, domain.ErrInvalidQuery.Error())
	case errors.Is(err, domain.ErrIndexUnavailable):
		writeError(w, http.StatusServiceUnavailable, CodeInternalError, domain.ErrIndexUnavailable.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
	}
}

func resultToResponse(r *resolveuc.Result) ResolveResponse {
	resp := ResolveResponse{
		Query: r.Query,
		Intent: IntentResult{
			Intent:     string(r.Intent.Intent),
			Confidence: r.Intent.Confidence,
			Source:     string(r.Intent.Source),
			Adjusted:   r.Intent.Adjusted,
		},
		Entities:        make([]Entity, 0, len(r.Entities)),
		Empty:           r.Empty,
		BookingRedirect: r.BookingRedirect,
	}
	if r.Empty {
		resp.Suggestion = "No matching venues found. Try broadening the query."
	}
	for _, e := range r.Entities {
		resp.Entities = append(resp.Entities, entityToDTO(e))
	}
	return resp
}

func entityToDTO(e *aggregate.Entity) Entity {
	out := Entity{
		ID:         e.EntityID,
		Name:       e.Name(),
		Score:      e.Score,
		Attributes: e.PrimaryAttributes,
	}
	for _, t := range []hit.ItemType{hit.Submenu, hit.Subtable, hit.Subservice, hit.Subimage} {
		for _, h := range e.Items(t) {
			out.Items = append(out.Items, Item{
				Type:       string(t),
				Name:       h.Name(),
				Score:      h.Similarity(),
				Attributes: h.Attributes,
			})
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
