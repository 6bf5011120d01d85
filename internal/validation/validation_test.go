package validation

import (
	"errors"
	"strings"
	"testing"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details(t *testing.T, err error) map[string]string {
	t.Helper()

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, apperr.KindValidation, appErr.Kind)

	out := make(map[string]string, len(appErr.Details))
	for _, d := range appErr.Details {
		out[d.Field] = d.Message
	}
	return out
}

func TestStruct_Book(t *testing.T) {
	valid := models.Book{Title: "The Hobbit", Summary: "There and back again.", ISBN: "9780261103344"}
	assert.NoError(t, Struct(&valid))

	err := Struct(&models.Book{Summary: strings.Repeat("x", 1001), ISBN: "97802611033441"})
	got := details(t, err)

	assert.Equal(t, "title is required", got["title"])
	assert.Equal(t, "summary must be at most 1000 characters", got["summary"])
	assert.Equal(t, "isbn must be at most 13 characters", got["isbn"])
}

func TestStruct_LengthCountsRunes(t *testing.T) {
	g := models.Genre{Name: strings.Repeat("é", 200)}
	assert.NoError(t, Struct(&g))

	g.Name += "é"
	assert.Contains(t, details(t, Struct(&g)), "name")
}

func TestStruct_Author(t *testing.T) {
	got := details(t, Struct(&models.Author{FirstName: "J.R.R."}))

	assert.Equal(t, "last_name is required", got["last_name"])
	assert.NotContains(t, got, "first_name")
}

func TestStruct_BookInstance(t *testing.T) {
	bi := models.BookInstance{BookID: 1, Imprint: "Allen & Unwin"}
	assert.NoError(t, Struct(&bi), "empty slug and status are filled at create time")

	bi.Status = models.StatusReserved
	bi.Slug = "the-hobbit"
	assert.NoError(t, Struct(&bi))

	for _, explicit := range []string{"first_edition", "First-Edition", "hobbit--1"} {
		bi.Slug = explicit
		assert.NoError(t, Struct(&bi), explicit)
	}

	bi.Status = "lost"
	bi.Slug = strings.Repeat("s", 251)
	got := details(t, Struct(&bi))
	assert.Contains(t, got["status"], "must be one of")
	assert.Equal(t, "slug must be at most 250 characters", got["slug"])

	got = details(t, Struct(&models.BookInstance{}))
	assert.Contains(t, got, "book_id")
	assert.Contains(t, got, "imprint")
}
