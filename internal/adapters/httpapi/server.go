// Package httpapi exposes the todo service over the JSON wire format the web
// client speaks. It is a thin translation layer: decode and validate shapes,
// resolve the acting owner, call the service, encode the result. All position
// logic lives behind the primary port.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/rs/cors"

	"github.com/example/todo/internal/ports/primary"
)

// OwnerResolver extracts the authenticated owner identifier from a request.
// Authentication itself (passkeys, sessions) happens upstream of this
// service; the resolver is the seam where that layer hands us its result.
// An empty return means the request is unauthenticated.
type OwnerResolver func(r *http.Request) string

// OwnerHeader is the header the default resolver reads.
const OwnerHeader = "X-Todo-Owner"

// HeaderOwnerResolver resolves the owner from the X-Todo-Owner header.
func HeaderOwnerResolver(r *http.Request) string {
	return r.Header.Get(OwnerHeader)
}

// Server translates HTTP requests into TodoService calls.
type Server struct {
	todos    primary.TodoService
	owners   primary.OwnerService
	resolver OwnerResolver
}

// NewServer creates a new API server. A nil resolver defaults to
// HeaderOwnerResolver.
func NewServer(todos primary.TodoService, owners primary.OwnerService, resolver OwnerResolver) *Server {
	if resolver == nil {
		resolver = HeaderOwnerResolver
	}
	return &Server{todos: todos, owners: owners, resolver: resolver}
}

// Handler returns the routed handler wrapped with CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/todos", s.handleList)
	mux.HandleFunc("POST /api/todos", s.handleCreate)
	mux.HandleFunc("PATCH /api/todos/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /api/todos/{id}", s.handleDelete)
	mux.HandleFunc("PATCH /api/todos/{id}/position", s.handleMove)
	mux.HandleFunc("PUT /api/todos/positions", s.handleBatchMove)
	mux.HandleFunc("POST /api/owners", s.handleRegisterOwner)
	mux.HandleFunc("GET /api/owners/me", s.handleWhoAmI)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", OwnerHeader},
	})

	return logRequests(c.Handler(mux))
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

type listResponse struct {
	Success bool            `json:"success"`
	Todos   []*primary.Todo `json:"todos"`
}

type todoResponse struct {
	Success bool          `json:"success"`
	Todo    *primary.Todo `json:"todo"`
}

type okResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type createRequest struct {
	Title string `json:"title"`
}

type updateRequest struct {
	Title *string `json:"title"`
	Done  *bool   `json:"done"`
}

type moveRequest struct {
	Position int `json:"position"`
}

type batchRequest struct {
	Updates []primary.PositionUpdate `json:"updates"`
}

type registerRequest struct {
	DisplayName string `json:"display_name"`
}

type ownerResponse struct {
	Success bool           `json:"success"`
	Owner   *primary.Owner `json:"owner"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	todos, err := s.todos.ListTodos(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Todos: todos})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	var req createRequest
	if !decodeBody(w, r, &req) {
		return
	}

	todo, err := s.todos.AppendTodo(r.Context(), primary.AppendTodoRequest{OwnerID: owner, Title: req.Title})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, todoResponse{Success: true, Todo: todo})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	todo, err := s.todos.UpdateTodo(r.Context(), primary.UpdateTodoRequest{
		OwnerID: owner,
		TodoID:  id,
		Title:   req.Title,
		Done:    req.Done,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todoResponse{Success: true, Todo: todo})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.todos.RemoveTodo(r.Context(), owner, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{Success: true})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Position < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "position must be a positive integer"})
		return
	}

	todos, err := s.todos.MoveTodo(r.Context(), primary.MoveTodoRequest{
		OwnerID: owner,
		TodoID:  id,
		Target:  req.Position,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Todos: todos})
}

func (s *Server) handleBatchMove(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	var req batchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	todos, err := s.todos.BatchMove(r.Context(), primary.BatchMoveRequest{
		OwnerID: owner,
		Updates: req.Updates,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Todos: todos})
}

// handleRegisterOwner mints a new owner identity. It is the one route that
// does not require the owner header.
func (s *Server) handleRegisterOwner(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	owner, err := s.owners.RegisterOwner(r.Context(), req.DisplayName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ownerResponse{Success: true, Owner: owner})
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.owner(w, r)
	if !ok {
		return
	}

	owner, err := s.owners.GetOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ownerResponse{Success: true, Owner: owner})
}

// owner resolves the acting owner or writes a 401.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := s.resolver(r)
	if owner == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing owner identity"})
		return "", false
	}
	return owner, true
}

// pathID parses the {id} path segment or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid todo id"})
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON body or writes a 400. Rejection happens before
// any service call, so a malformed request never starts a transaction.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}

// writeError maps the service error taxonomy onto status codes. Store
// failures are logged in full but surfaced generically.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case primary.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case primary.IsAuthorization(err):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case primary.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
