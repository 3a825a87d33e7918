package handlers

import (
	"net/http"

	"recipebox/models"
)

var tagCollection = labelCollection[models.Tag]{
	kind: "tag",
	build: func(name string, ownerID uint) models.Tag {
		return models.Tag{Name: name, OwnerID: ownerID}
	},
	project: func(tag models.Tag) labelResponse {
		return labelResponse{ID: tag.ID, Name: tag.Name}
	},
}

// ListTags returns the acting user's tags ordered by name descending.
func ListTags(w http.ResponseWriter, r *http.Request) {
	tagCollection.list(w, r)
}

// CreateTag stores a new tag owned by the acting user.
func CreateTag(w http.ResponseWriter, r *http.Request) {
	tagCollection.create(w, r)
}
