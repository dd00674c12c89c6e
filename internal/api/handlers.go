package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lbehrens/powerset/pkg/errors"
	"github.com/lbehrens/powerset/pkg/machine"
	"github.com/lbehrens/powerset/pkg/store"
)

// ctxKey is the type for context keys used in this package.
type ctxKey int

const requestIDKey ctxKey = 0

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// errorEnvelope is the JSON shape of every error response.
type errorEnvelope struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// machineResponse wraps a stored or freshly computed machine.
type machineResponse struct {
	ID        string          `json:"id,omitempty"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	Cached    bool            `json:"cached,omitempty"`
	Machine   machine.Machine `json:"machine"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDeterminize converts a posted description without storing anything.
func (s *Server) handleDeterminize(w http.ResponseWriter, r *http.Request) {
	desc, ok := s.decodeDescription(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Determinize(r.Context(), desc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, machineResponse{Machine: result.Machine, Cached: result.Cached})
}

// handleCreateMachine determinizes a posted description and stores the
// result under a fresh uuid.
func (s *Server) handleCreateMachine(w http.ResponseWriter, r *http.Request) {
	desc, ok := s.decodeDescription(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Determinize(r.Context(), desc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := store.Record{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Description: desc,
		Machine:     result.Machine,
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store machine"))
		return
	}

	writeJSON(w, http.StatusCreated, machineResponse{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		Cached:    result.Cached,
		Machine:   rec.Machine,
	})
}

func (s *Server) handleListMachines(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "list machines"))
		return
	}

	out := make([]machineResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, machineResponse{ID: rec.ID, CreatedAt: rec.CreatedAt, Machine: rec.Machine})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMachine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, errors.New(errors.ErrCodeMachineNotFound, "machine %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "get machine %s", id))
		return
	}
	writeJSON(w, http.StatusOK, machineResponse{ID: rec.ID, CreatedAt: rec.CreatedAt, Machine: rec.Machine})
}

func (s *Server) handleDeleteMachine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "delete machine %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeDescription reads the request body; on failure it writes the error
// response itself and reports ok=false.
func (s *Server) decodeDescription(w http.ResponseWriter, r *http.Request) (machine.Description, bool) {
	var desc machine.Description
	if err := json.NewDecoder(r.Body).Decode(&desc); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return machine.Description{}, false
	}
	return desc, true
}

// writeError maps error codes to HTTP statuses and writes the envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"err", err,
			"request_id", requestIDFromContext(r.Context()))
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorEnvelope{Code: code, Message: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSymbol,
		errors.ErrCodeInvalidAlphabet, errors.ErrCodeInvalidMachine,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeMachineNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
