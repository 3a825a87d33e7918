package handlers

import (
	"net/http"

	"recipebox/models"
)

var ingredientCollection = labelCollection[models.Ingredient]{
	kind: "ingredient",
	build: func(name string, ownerID uint) models.Ingredient {
		return models.Ingredient{Name: name, OwnerID: ownerID}
	},
	project: func(ingredient models.Ingredient) labelResponse {
		return labelResponse{ID: ingredient.ID, Name: ingredient.Name}
	},
}

// ListIngredients returns the acting user's ingredients ordered by name descending.
func ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredientCollection.list(w, r)
}

// CreateIngredient stores a new ingredient owned by the acting user.
func CreateIngredient(w http.ResponseWriter, r *http.Request) {
	ingredientCollection.create(w, r)
}
