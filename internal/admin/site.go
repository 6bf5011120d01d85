// Package admin describes which catalog entities are managed over the API and
// how their list views behave. Registrations are built explicitly at startup.
package admin

import (
	"fmt"

	"catalog-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// CRUDHandler serves the five standard operations for one entity kind.
type CRUDHandler interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// ModelAdmin is the registration of one entity kind.
type ModelAdmin struct {
	Kind         models.Kind
	VerboseName  string
	ListDisplay  []string
	SearchFields []string
	Ordering     []string
	Handler      CRUDHandler
}

// Site is an ordered set of registrations, at most one per kind.
type Site struct {
	registrations []ModelAdmin
}

func NewSite(registrations ...ModelAdmin) (*Site, error) {
	seen := make(map[models.Kind]bool, len(registrations))
	for _, r := range registrations {
		if r.Kind == "" {
			return nil, fmt.Errorf("admin registration without kind")
		}
		if r.Handler == nil {
			return nil, fmt.Errorf("admin registration %q has no handler", r.Kind)
		}
		if seen[r.Kind] {
			return nil, fmt.Errorf("%q is already registered", r.Kind)
		}
		seen[r.Kind] = true
	}
	return &Site{registrations: registrations}, nil
}

// Registrations returns a copy of the registrations in order.
func (s *Site) Registrations() []ModelAdmin {
	out := make([]ModelAdmin, len(s.registrations))
	copy(out, s.registrations)
	return out
}

func (s *Site) Lookup(kind models.Kind) (ModelAdmin, bool) {
	return lo.Find(s.registrations, func(r ModelAdmin) bool {
		return r.Kind == kind
	})
}

func (s *Site) Kinds() []models.Kind {
	return lo.Map(s.registrations, func(r ModelAdmin, _ int) models.Kind {
		return r.Kind
	})
}

// Catalog registers all six catalog entities with their default list views.
// handlers must hold one entry per kind in models.Kinds.
func Catalog(handlers map[models.Kind]CRUDHandler) (*Site, error) {
	if missing := lo.Filter(models.Kinds, func(k models.Kind, _ int) bool {
		return handlers[k] == nil
	}); len(missing) > 0 {
		return nil, fmt.Errorf("missing admin handlers for %v", missing)
	}

	return NewSite(
		ModelAdmin{
			Kind:         models.KindGenre,
			VerboseName:  "genre",
			ListDisplay:  []string{"name"},
			SearchFields: []string{"name"},
			Ordering:     []string{"id"},
			Handler:      handlers[models.KindGenre],
		},
		ModelAdmin{
			Kind:         models.KindLanguage,
			VerboseName:  "language",
			ListDisplay:  []string{"name"},
			SearchFields: []string{"name"},
			Ordering:     []string{"id"},
			Handler:      handlers[models.KindLanguage],
		},
		ModelAdmin{
			Kind:         models.KindAuthor,
			VerboseName:  "author",
			ListDisplay:  []string{"last_name", "first_name", "date_of_birth", "date_of_death"},
			SearchFields: []string{"first_name", "last_name"},
			Ordering:     []string{"last_name", "first_name"},
			Handler:      handlers[models.KindAuthor],
		},
		ModelAdmin{
			Kind:         models.KindBook,
			VerboseName:  "book",
			ListDisplay:  []string{"title", "author", "isbn"},
			SearchFields: []string{"title", "author"},
			Ordering:     []string{"id"},
			Handler:      handlers[models.KindBook],
		},
		ModelAdmin{
			Kind:         models.KindBookInstance,
			VerboseName:  "book instance",
			ListDisplay:  []string{"book", "status", "due_back", "id"},
			SearchFields: []string{"imprint", "slug"},
			Ordering:     []string{"due_back"},
			Handler:      handlers[models.KindBookInstance],
		},
		ModelAdmin{
			Kind:         models.KindMyModelName,
			VerboseName:  "my model name",
			ListDisplay:  []string{"my_field_name"},
			SearchFields: []string{"my_field_name"},
			Ordering:     []string{"-my_field_name"},
			Handler:      handlers[models.KindMyModelName],
		},
	)
}
