package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/vanshika/filmgraph/internal/repository"
	"github.com/vanshika/filmgraph/internal/service"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *zap.Logger
	service *service.CatalogService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *zap.Logger, svc *service.CatalogService) *APIHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

func (h *APIHandlers) listPersons(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	people, err := h.service.PersonsByTitle(r.Context(), title)
	if err != nil {
		h.fail(w, err, "failed to list persons", zap.String("title", title))
		return
	}

	response := make([]personResponse, 0, len(people))
	for _, p := range people {
		response = append(response, toPersonResponse(p))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) getPerson(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	person, err := h.service.PersonByUID(r.Context(), uid)
	if err != nil {
		h.fail(w, err, "failed to fetch person", zap.String("uid", uid))
		return
	}
	respondJSON(w, http.StatusOK, toPersonResponse(person))
}

func (h *APIHandlers) upsertPerson(w http.ResponseWriter, r *http.Request) {
	var payload personRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	person, err := h.service.UpsertPerson(r.Context(), payload.toServiceInput())
	if err != nil {
		h.fail(w, err, "failed to persist person", zap.String("uid", payload.UID))
		return
	}
	respondJSON(w, http.StatusCreated, toPersonResponse(person))
}

func (h *APIHandlers) listMovies(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	movies, err := h.service.MoviesByTitle(r.Context(), title)
	if err != nil {
		h.fail(w, err, "failed to list movies", zap.String("title", title))
		return
	}

	response := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		response = append(response, toMovieResponse(m))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) getMovie(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	movie, err := h.service.MovieByUID(r.Context(), uid)
	if err != nil {
		h.fail(w, err, "failed to fetch movie", zap.String("uid", uid))
		return
	}
	respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (h *APIHandlers) upsertMovie(w http.ResponseWriter, r *http.Request) {
	var payload movieRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	movie, err := h.service.UpsertMovie(r.Context(), payload.toServiceInput())
	if err != nil {
		h.fail(w, err, "failed to persist movie", zap.String("uid", payload.UID))
		return
	}
	respondJSON(w, http.StatusCreated, toMovieResponse(movie))
}

// fail maps service and repository errors onto HTTP statuses.
func (h *APIHandlers) fail(w http.ResponseWriter, err error, msg string, fields ...zap.Field) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, append(fields, zap.Error(err))...)
	}

	switch status {
	case http.StatusBadRequest:
		writeError(w, status, err.Error())
	case http.StatusNotFound:
		writeError(w, status, "not found")
	default:
		writeError(w, status, msg)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConnectionFailed):
		return http.StatusServiceUnavailable
	case errors.Is(err, repository.ErrQueryFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
