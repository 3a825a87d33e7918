package handlers

import (
	"net/http"
	"strings"

	applog "recipebox/internal/log"
	"recipebox/models"
)

type labelResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type labelRequest struct {
	Name string `json:"name"`
}

// labelEntity is the set of simple named entities that share the owner-scoped
// list+create behavior.
type labelEntity interface {
	models.Tag | models.Ingredient
}

// labelCollection is one parameterized owner-scoped collection. The two-step
// pipeline is explicit: list computes the visible set for the acting user,
// create stamps the owner server-side before persisting.
type labelCollection[T labelEntity] struct {
	kind    string
	build   func(name string, ownerID uint) T
	project func(entity T) labelResponse
}

func (c labelCollection[T]) list(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	user, ok := CurrentUser(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx := r.Context()
	var results []T
	err := database.WithContext(ctx).
		Where("owner_id = ?", user.ID).
		Order("name desc").
		Find(&results).Error
	if err != nil {
		applog.Error(ctx, "failed to list collection", "kind", c.kind, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	responses := make([]labelResponse, 0, len(results))
	for _, entity := range results {
		responses = append(responses, c.project(entity))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (c labelCollection[T]) create(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	user, ok := CurrentUser(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx := r.Context()
	var payload labelRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid collection payload", "kind", c.kind, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}

	entity := c.build(name, user.ID)
	if err := database.WithContext(ctx).Create(&entity).Error; err != nil {
		applog.Error(ctx, "failed to create collection entry", "kind", c.kind, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, c.project(entity))
}
