package artworks

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/galleria-go/apperror"
	"github.com/user/galleria-go/auth"
)

// Handler exposes the artwork service over HTTP.
type Handler struct {
	service Service
}

// NewHandler creates a Handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the artwork endpoints on a router group. The
// caller applies the auth middleware to the group.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

// userID pulls the authenticated identity out of the request context.
func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user ID not found in request context", nil))
		return 0, false
	}
	return id, true
}

// artworkID parses the {id} route parameter. A non-numeric ID cannot
// match any record, so it is reported as not-found.
func artworkID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewNotFoundError("artwork not found", nil))
		return 0, false
	}
	return id, true
}

// handleCreate godoc
// @Summary Add an artwork
// @Tags artworks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param artworkBody body ArtworkInput true "Artwork fields"
// @Success 201 {object} Artwork
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/artworks [post]
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var input ArtworkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	artwork, err := h.service.Create(r.Context(), uid, input)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, artwork)
}

// handleList godoc
// @Summary List the current user's artworks
// @Description Returns all artworks owned by the authenticated user, newest first.
// @Tags artworks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Artwork
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/artworks [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	artworks, err := h.service.List(r.Context(), uid)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, artworks)
}

// handleGet godoc
// @Summary Get a single artwork
// @Tags artworks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Artwork ID"
// @Success 200 {object} Artwork
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/artworks/{id} [get]
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := artworkID(w, r)
	if !ok {
		return
	}

	artwork, err := h.service.GetByID(r.Context(), uid, id)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, artwork)
}

// handleUpdate godoc
// @Summary Update an artwork
// @Description Replaces all mutable fields of an owned artwork.
// @Tags artworks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Artwork ID"
// @Param artworkBody body ArtworkInput true "New artwork fields"
// @Success 200 {object} UpdateArtworkResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/artworks/{id} [put]
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := artworkID(w, r)
	if !ok {
		return
	}

	var input ArtworkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	artwork, err := h.service.Update(r.Context(), uid, id, input)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, UpdateArtworkResponse{
		Message: "artwork updated",
		Artwork: *artwork,
	})
}

// handleDelete godoc
// @Summary Delete an artwork
// @Description Removes an owned artwork. Succeeds even when no matching record exists.
// @Tags artworks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Artwork ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/artworks/{id} [delete]
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := artworkID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), uid, id); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "artwork deleted"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
