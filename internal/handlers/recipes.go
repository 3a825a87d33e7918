package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applog "recipebox/internal/log"
	"recipebox/models"
)

// recipeWriteRequest is the transport schema for recipe writes: associations
// are id references, and every field is a pointer so a partial update can
// tell an omitted field from an explicit zero.
type recipeWriteRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *float64 `json:"price"`
	Link        *string  `json:"link"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}

// recipeResponse is the list/write schema: tags and ingredients by id.
type recipeResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

// recipeDetailResponse is the retrieve schema: associations are nested.
type recipeDetailResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       float64         `json:"price"`
	Link        string          `json:"link"`
	Tags        []labelResponse `json:"tags"`
	Ingredients []labelResponse `json:"ingredients"`
}

var errUnknownAssociation = errors.New("association ids must reference your own records")

func projectRecipe(recipe models.Recipe) recipeResponse {
	tags := make([]uint, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, tag.ID)
	}
	ingredients := make([]uint, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, ingredient.ID)
	}
	return recipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func projectRecipeDetail(recipe models.Recipe) recipeDetailResponse {
	tags := make([]labelResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, labelResponse{ID: tag.ID, Name: tag.Name})
	}
	ingredients := make([]labelResponse, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, labelResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	return recipeDetailResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

// loadOwnedLabels resolves association ids to entities owned by ownerID.
// Unknown or foreign ids fail the whole lookup.
func loadOwnedLabels[T labelEntity](ctx context.Context, ownerID uint, ids []uint) ([]T, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	results := make([]T, 0, len(unique))
	if len(unique) == 0 {
		return results, nil
	}

	err := database.WithContext(ctx).
		Where("owner_id = ? AND id IN ?", ownerID, unique).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	if len(results) != len(unique) {
		return nil, errUnknownAssociation
	}
	return results, nil
}

// ListRecipes returns the acting user's recipes, newest first.
func ListRecipes(w http.ResponseWriter, r *http.Request) {
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
	var recipes []models.Recipe
	err := database.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("owner_id = ?", user.ID).
		Order("id desc").
		Find(&recipes).Error
	if err != nil {
		applog.Error(ctx, "failed to list recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	responses := make([]recipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		responses = append(responses, projectRecipe(recipe))
	}
	writeJSON(w, http.StatusOK, responses)
}

// CreateRecipe stores a new recipe. The owner is always the acting user; the
// transport schema carries no owner field, so a spoofed owner cannot even be
// expressed. The recipe row and its association rows commit as one unit.
func CreateRecipe(w http.ResponseWriter, r *http.Request) {
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
	var payload recipeWriteRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid recipe payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	recipe := models.Recipe{OwnerID: user.ID}
	if msg := applyRecipeScalars(&recipe, payload, false); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	tags, err := loadOwnedLabels[models.Tag](ctx, user.ID, derefIDs(payload.Tags))
	if err != nil {
		writeAssociationError(w, ctx, "tags", err)
		return
	}
	ingredients, err := loadOwnedLabels[models.Ingredient](ctx, user.ID, derefIDs(payload.Ingredients))
	if err != nil {
		writeAssociationError(w, ctx, "ingredients", err)
		return
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		if len(ingredients) > 0 {
			if err := tx.Model(&recipe).Association("Ingredients").Replace(ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		applog.Error(ctx, "failed to create recipe", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	recipe.Tags = tags
	recipe.Ingredients = ingredients
	writeJSON(w, http.StatusCreated, projectRecipe(recipe))
}

// ShowRecipe retrieves one of the acting user's recipes with nested tag and
// ingredient detail. A recipe owned by someone else is indistinguishable
// from a missing one.
func ShowRecipe(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	user, ok := CurrentUser(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	recipe, ok := loadOwnedRecipe(w, r, user.ID)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, projectRecipeDetail(recipe))
}

// UpdateRecipe mutates one of the acting user's recipes. PATCH merges only
// the supplied fields; PUT replaces the whole resource, clearing omitted
// associations. Scalar and association changes commit as one unit.
func UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	if database == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	user, ok := CurrentUser(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	partial := r.Method == http.MethodPatch

	recipe, ok := loadOwnedRecipe(w, r, user.ID)
	if !ok {
		return
	}

	ctx := r.Context()
	var payload recipeWriteRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(ctx, "invalid recipe payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if msg := applyRecipeScalars(&recipe, payload, partial); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	replaceTags := payload.Tags != nil || !partial
	replaceIngredients := payload.Ingredients != nil || !partial

	var tags []models.Tag
	var ingredients []models.Ingredient
	var err error
	if replaceTags {
		tags, err = loadOwnedLabels[models.Tag](ctx, user.ID, derefIDs(payload.Tags))
		if err != nil {
			writeAssociationError(w, ctx, "tags", err)
			return
		}
	}
	if replaceIngredients {
		ingredients, err = loadOwnedLabels[models.Ingredient](ctx, user.ID, derefIDs(payload.Ingredients))
		if err != nil {
			writeAssociationError(w, ctx, "ingredients", err)
			return
		}
	}

	updates := map[string]any{
		"title":        recipe.Title,
		"time_minutes": recipe.TimeMinutes,
		"price":        recipe.Price,
		"link":         recipe.Link,
	}

	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}
		if replaceTags {
			assoc := tx.Model(&recipe).Association("Tags")
			if len(tags) == 0 {
				if err := assoc.Clear(); err != nil {
					return err
				}
			} else if err := assoc.Replace(tags); err != nil {
				return err
			}
		}
		if replaceIngredients {
			assoc := tx.Model(&recipe).Association("Ingredients")
			if len(ingredients) == 0 {
				if err := assoc.Clear(); err != nil {
					return err
				}
			} else if err := assoc.Replace(ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		applog.Error(ctx, "failed to update recipe", "error", err, "id", recipe.ID)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var stored models.Recipe
	err = database.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		First(&stored, recipe.ID).Error
	if err != nil {
		applog.Error(ctx, "failed to reload recipe after update", "error", err, "id", recipe.ID)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, projectRecipe(stored))
}

// applyRecipeScalars validates and applies the scalar fields of a write
// payload. With partial false, omitted fields reset to their defaults.
// Returns a client-facing message on validation failure, empty on success.
func applyRecipeScalars(recipe *models.Recipe, payload recipeWriteRequest, partial bool) string {
	if payload.Title != nil || !partial {
		title := ""
		if payload.Title != nil {
			title = strings.TrimSpace(*payload.Title)
		}
		if title == "" {
			return "title is required"
		}
		recipe.Title = title
	}

	if payload.TimeMinutes != nil {
		if *payload.TimeMinutes < 0 {
			return "time_minutes must not be negative"
		}
		recipe.TimeMinutes = *payload.TimeMinutes
	} else if !partial {
		recipe.TimeMinutes = 0
	}

	if payload.Price != nil {
		if *payload.Price < 0 {
			return "price must not be negative"
		}
		recipe.Price = *payload.Price
	} else if !partial {
		recipe.Price = 0
	}

	if payload.Link != nil {
		recipe.Link = strings.TrimSpace(*payload.Link)
	} else if !partial {
		recipe.Link = ""
	}

	return ""
}

// loadOwnedRecipe resolves the {id} route parameter to a recipe owned by
// ownerID. On any miss it writes the uniform 404 and reports false.
func loadOwnedRecipe(w http.ResponseWriter, r *http.Request, ownerID uint) (models.Recipe, bool) {
	ctx := r.Context()

	idValue, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return models.Recipe{}, false
	}

	var recipe models.Recipe
	err = database.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND owner_id = ?", uint(idValue), ownerID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSONError(w, http.StatusNotFound, "not found")
			return models.Recipe{}, false
		}
		applog.Error(ctx, "failed to load recipe", "error", err, "id", idValue)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return models.Recipe{}, false
	}

	return recipe, true
}

func derefIDs(ids *[]uint) []uint {
	if ids == nil {
		return nil
	}
	return *ids
}

func writeAssociationError(w http.ResponseWriter, ctx context.Context, field string, err error) {
	if errors.Is(err, errUnknownAssociation) {
		writeJSONError(w, http.StatusBadRequest, field+" contains invalid ids")
		return
	}
	applog.Error(ctx, "failed to resolve associations", "field", field, "error", err)
	writeJSONError(w, http.StatusInternalServerError, "internal server error")
}
