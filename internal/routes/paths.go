package routes

import (
	"fmt"

	"catalog-backend/internal/models"
)

// APIPrefix is where every versioned route is mounted.
const APIPrefix = "/api/v1"

var segments = map[models.Kind]string{
	models.KindGenre:        "genres",
	models.KindLanguage:     "languages",
	models.KindAuthor:       "authors",
	models.KindBook:         "books",
	models.KindBookInstance: "book-instances",
	models.KindMyModelName:  "my-model-names",
}

// Segment returns the collection path segment for kind, or "" if kind is unknown.
func Segment(kind models.Kind) string {
	return segments[kind]
}

// CollectionPath returns the list path for kind, e.g. /api/v1/books.
func CollectionPath(kind models.Kind) string {
	seg := Segment(kind)
	if seg == "" {
		return ""
	}
	return APIPrefix + "/" + seg
}

// DetailPath returns the canonical path of a single entity, e.g. /api/v1/books/12.
func DetailPath(kind models.Kind, id any) string {
	base := CollectionPath(kind)
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/%v", base, id)
}
