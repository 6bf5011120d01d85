package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/database"

	"gorm.io/gorm"
)

// ListParams carries the generic admin list view controls.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

type baseRepository struct {
	db      *database.Database
	timeout time.Duration
}

func newBaseRepository(db *database.Database) baseRepository {
	return baseRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *baseRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// mustExist returns a not-found error unless a row of model with the given id exists.
func mustExist(tx *gorm.DB, model interface{}, resource string, id interface{}) error {
	err := tx.Select("id").Where("id = ?", id).Take(model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(resource, id)
		}
		return err
	}
	return nil
}

func paginate(query *gorm.DB, params ListParams) *gorm.DB {
	if params.Limit > 0 {
		query = query.Offset(params.offset()).Limit(params.Limit)
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring pattern for LIKE ... ESCAPE '\'. Wildcards in
// search match literally.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}
