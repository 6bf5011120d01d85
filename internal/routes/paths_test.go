package routes

import (
	"testing"

	"catalog-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDetailPath(t *testing.T) {
	id := uuid.MustParse("6f1c2a4e-0d0b-4a8f-9a41-2f0e3c5b7d11")

	assert.Equal(t, "/api/v1/books/12", DetailPath(models.KindBook, 12))
	assert.Equal(t, "/api/v1/authors/3", DetailPath(models.KindAuthor, uint(3)))
	assert.Equal(t, "/api/v1/book-instances/6f1c2a4e-0d0b-4a8f-9a41-2f0e3c5b7d11", DetailPath(models.KindBookInstance, id))
	assert.Equal(t, "", DetailPath(models.Kind("unknown"), 1))
}

func TestEveryKindHasASegment(t *testing.T) {
	seen := map[string]bool{}
	for _, kind := range models.Kinds {
		seg := Segment(kind)
		assert.NotEmpty(t, seg, kind)
		assert.False(t, seen[seg], "duplicate segment %q", seg)
		seen[seg] = true
	}
}
