// Package rest is the HTTP transport adapter for the recipe query engine.
// It deserializes query requests, invokes the engine, and serializes the
// result; all domain failures arrive here already classified.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/schema"

	"recipedex/internal/catalog"
	"recipedex/pkg/model"
)

// Default body size limit for query documents
const DefaultMaxBodySize = 1 << 20 // 1MB

// Default request timeout
const DefaultRequestTimeout = 30 * time.Second

// APIError represents a structured error response for transport-level
// failures (bad request bodies, unroutable paths). Query-level failures use
// the response envelope instead.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// queryDecoder maps URL parameters onto graphQLRequest for GET requests.
var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

type graphQLRequest struct {
	Query         string          `json:"query" schema:"query"`
	OperationName string          `json:"operationName" schema:"operationName"`
	Variables     json.RawMessage `json:"variables" schema:"-"`
}

type graphQLError struct {
	Message    string            `json:"message"`
	Extensions map[string]string `json:"extensions,omitempty"`
}

type graphQLResponse struct {
	Data   interface{}    `json:"data,omitempty"`
	Errors []graphQLError `json:"errors,omitempty"`
}

// Handler serves the query endpoint and the interactive console.
type Handler struct {
	engine catalog.Service
}

// NewHandler creates a new transport handler for the given query service.
func NewHandler(engine catalog.Service) *Handler {
	if engine == nil {
		panic("query service cannot be nil")
	}
	return &Handler{engine: engine}
}

// RegisterRoutes attaches all endpoints to the mux. Anything unrouted gets a
// generic JSON 404, distinct from the query-level not-found error.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /graphql", withTimeout(maxBodySize(h.handleQueryPost, DefaultMaxBodySize), DefaultRequestTimeout))
	mux.HandleFunc("GET /graphql", withTimeout(h.handleQueryGet, DefaultRequestTimeout))
	mux.HandleFunc("GET /graphiql", h.handleConsole)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("/", h.handleNotFound)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, "Not found")
}

func (h *Handler) handleQueryPost(w http.ResponseWriter, r *http.Request) {
	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body")
		return
	}
	h.execute(w, r, req)
}

func (h *Handler) handleQueryGet(w http.ResponseWriter, r *http.Request) {
	var req graphQLRequest
	if err := queryDecoder.Decode(&req, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid query parameters")
		return
	}
	h.execute(w, r, req)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, req graphQLRequest) {
	op, err := ParseQuery(req.Query)
	if err != nil {
		writeQueryFailure(w, http.StatusBadRequest, &model.AppError{Kind: model.InvalidFieldError})
		return
	}

	switch op.Kind {
	case OpAPIVersion:
		writeData(w, map[string]interface{}{"apiVersion": h.engine.APIVersion()})

	case OpRecipes:
		recipes, err := h.engine.Recipes(r.Context())
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeData(w, map[string]interface{}{"recipes": recipes})

	case OpRecipe:
		recipe, err := h.engine.Recipe(r.Context(), op.Title)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeData(w, map[string]interface{}{"recipe": recipe})
	}
}

func (h *Handler) handleConsole(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(consoleHTML))
}

// writeData writes a successful response envelope.
func writeData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, graphQLResponse{Data: data})
}

// writeEngineError translates an engine failure into the response envelope.
// Engine errors always carry a taxonomy kind; anything else is reported with
// the generic db-error text, never the raw diagnostic.
func writeEngineError(w http.ResponseWriter, err error) {
	if model.IsCanceled(err) {
		w.WriteHeader(499) // Client Closed Request
		return
	}

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		slog.Error("Unclassified engine error", "error", err)
		appErr = model.WrapDbError(err)
	}
	if appErr.Kind == model.DbError {
		slog.Error("Query resolution failed", "cause", appErr.Cause)
	}

	writeQueryFailure(w, http.StatusOK, appErr)
}

// writeQueryFailure writes the error envelope: one human-readable message
// and a machine-readable kind.
func writeQueryFailure(w http.ResponseWriter, status int, appErr *model.AppError) {
	writeJSON(w, status, graphQLResponse{
		Errors: []graphQLError{{
			Message:    appErr.Error(),
			Extensions: map[string]string{"kind": appErr.Kind.Code()},
		}},
	})
}

// writeError writes a structured JSON error response
func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, APIError{Code: code, Message: message})
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

// maxBodySize wraps a handler with request body size limiting
func maxBodySize(next http.HandlerFunc, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next(w, r)
	}
}

// withTimeout wraps a handler with a context timeout so that a slow store
// round-trip is abandoned rather than held open indefinitely.
func withTimeout(next http.HandlerFunc, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}
