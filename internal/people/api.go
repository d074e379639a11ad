// ABOUTME: HTTP API handlers for the /people resource.
// ABOUTME: Wraps every reply in the {message, body} envelope and maps NotFoundError to 404.

package people

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/2389/people-api/internal/store"
)

// Envelope messages.
const (
	MessageSuccess        = "Success"
	MessagePersonDeleted  = "Person deleted"
	MessageInvalidID      = "Invalid id"
	MessageInvalidBody    = "Invalid request body"
	MessageInternalServer = "Internal server error"
)

// APIResponse is the envelope around every response body.
type APIResponse struct {
	Message string `json:"message"`
	Body    any    `json:"body"`
}

// PersonRequest is the JSON request body for POST /people and PUT /people/{id}.
// ID is honoured on POST and ignored on PUT.
type PersonRequest struct {
	ID         *int64 `json:"id,omitempty"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Profession string `json:"profession"`
}

// PersonResponse is the JSON representation of a stored person.
type PersonResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Profession string `json:"profession"`
}

// Handler serves the /people routes.
type Handler struct {
	service PersonService
	logger  *slog.Logger
}

// NewHandler creates a Handler that delegates to service.
func NewHandler(service PersonService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		logger:  logger.With("component", "people-api"),
	}
}

// Routes returns a router to be mounted at the resource base path.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
	return r
}

// handleCreate handles POST /people.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePerson(w, r)
	if !ok {
		return
	}

	p := req.toPerson()
	if req.ID != nil {
		p.ID = *req.ID
	}

	saved, err := h.service.Save(r.Context(), p)
	if err != nil {
		h.sendError(w, r, err)
		return
	}

	h.sendJSON(w, http.StatusOK, MessageSuccess, toPersonResponse(saved))
}

// handleList handles GET /people.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.GetAllPersons(r.Context())
	if err != nil {
		h.sendError(w, r, err)
		return
	}

	body := lo.Map(all, func(p *store.Person, _ int) PersonResponse {
		return toPersonResponse(p)
	})
	h.sendJSON(w, http.StatusOK, MessageSuccess, body)
}

// handleGet handles GET /people/{id}.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetPersonByID(r.Context(), id)
	if err != nil {
		h.sendError(w, r, err)
		return
	}

	h.sendJSON(w, http.StatusOK, MessageSuccess, toPersonResponse(p))
}

// handleUpdate handles PUT /people/{id}. The path id wins over any id in the body.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodePerson(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), id, req.toPerson())
	if err != nil {
		h.sendError(w, r, err)
		return
	}

	h.sendJSON(w, http.StatusOK, MessageSuccess, toPersonResponse(updated))
}

// handleDelete handles DELETE /people/{id}.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.sendError(w, r, err)
		return
	}

	h.sendJSON(w, http.StatusOK, MessagePersonDeleted, nil)
}

// parseID reads the {id} path parameter, replying 400 when it is not an integer.
func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.sendJSON(w, http.StatusBadRequest, MessageInvalidID, nil)
		return 0, false
	}
	return id, true
}

// decodePerson parses the JSON request body, replying 400 when it is malformed.
func (h *Handler) decodePerson(w http.ResponseWriter, r *http.Request) (*PersonRequest, bool) {
	var req PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("invalid request body", "path", r.URL.Path, "error", err)
		h.sendJSON(w, http.StatusBadRequest, MessageInvalidBody, nil)
		return nil, false
	}
	return &req, true
}

// sendError maps NotFoundError to 404 with its message and everything else to 500.
func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		h.sendJSON(w, http.StatusNotFound, notFound.Message, nil)
		return
	}

	h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	h.sendJSON(w, http.StatusInternalServerError, MessageInternalServer, nil)
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, message string, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIResponse{Message: message, Body: body}); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}

func (req *PersonRequest) toPerson() *store.Person {
	return &store.Person{
		Name:       req.Name,
		Age:        req.Age,
		Profession: req.Profession,
	}
}

func toPersonResponse(p *store.Person) PersonResponse {
	return PersonResponse{
		ID:         p.ID,
		Name:       p.Name,
		Age:        p.Age,
		Profession: p.Profession,
	}
}
