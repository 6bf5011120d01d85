package handlers

import (
	"strings"
	"time"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/models"
)

const dateLayout = "2006-01-02"

type GenreRequest struct {
	Name string `json:"name" example:"Fantasy"`
}

type LanguageRequest struct {
	Name string `json:"name" example:"English"`
}

type AuthorRequest struct {
	FirstName   string `json:"first_name" example:"J.R.R."`
	LastName    string `json:"last_name" example:"Tolkien"`
	DateOfBirth string `json:"date_of_birth" example:"1892-01-03"`
	DateOfDeath string `json:"date_of_death" example:"1973-09-02"`
}

type BookRequest struct {
	Title      string `json:"title" example:"The Hobbit"`
	Summary    string `json:"summary" example:"Bilbo Baggins goes there and back again."`
	ISBN       string `json:"isbn" example:"9780261103344"`
	CoverURL   string `json:"cover_url"`
	AuthorID   *uint  `json:"author_id" example:"1"`
	LanguageID *uint  `json:"language_id" example:"1"`
	GenreIDs   []uint `json:"genre_ids"`
}

type BookInstanceRequest struct {
	BookID  uint   `json:"book_id" example:"1"`
	Imprint string `json:"imprint" example:"Allen & Unwin, 1937"`
	DueBack string `json:"due_back" example:"2026-11-01"`
	Status  string `json:"status" example:"on-loan"`
	Slug    string `json:"slug" example:"the-hobbit"`
}

type MyModelNameRequest struct {
	MyFieldName string `json:"my_field_name" example:"example"`
}

func (r *GenreRequest) toModel() *models.Genre {
	return &models.Genre{Name: strings.TrimSpace(r.Name)}
}

func (r *LanguageRequest) toModel() *models.Language {
	return &models.Language{Name: strings.TrimSpace(r.Name)}
}

func (r *AuthorRequest) toModel() (*models.Author, error) {
	born, err := parseDate("date_of_birth", r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	died, err := parseDate("date_of_death", r.DateOfDeath)
	if err != nil {
		return nil, err
	}
	return &models.Author{
		FirstName:   strings.TrimSpace(r.FirstName),
		LastName:    strings.TrimSpace(r.LastName),
		DateOfBirth: born,
		DateOfDeath: died,
	}, nil
}

func (r *BookRequest) toModel() *models.Book {
	return &models.Book{
		Title:      strings.TrimSpace(r.Title),
		Summary:    strings.TrimSpace(r.Summary),
		ISBN:       strings.TrimSpace(r.ISBN),
		CoverURL:   strings.TrimSpace(r.CoverURL),
		AuthorID:   r.AuthorID,
		LanguageID: r.LanguageID,
	}
}

func (r *BookInstanceRequest) toModel() (*models.BookInstance, error) {
	due, err := parseDate("due_back", r.DueBack)
	if err != nil {
		return nil, err
	}
	return &models.BookInstance{
		BookID:  r.BookID,
		Imprint: strings.TrimSpace(r.Imprint),
		DueBack: due,
		Status:  models.LoanStatus(strings.TrimSpace(r.Status)),
		Slug:    strings.TrimSpace(r.Slug),
	}, nil
}

func (r *MyModelNameRequest) toModel() *models.MyModelName {
	return &models.MyModelName{MyFieldName: strings.TrimSpace(r.MyFieldName)}
}

// parseDate accepts YYYY-MM-DD; an empty value means no date.
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperr.Validation("invalid date", apperr.FieldError{
			Field:   field,
			Message: field + " must be a date in YYYY-MM-DD format",
		})
	}
	return &d, nil
}
