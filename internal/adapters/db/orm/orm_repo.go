package orm

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	customErrors "github.com/Miraines/MoonyAndStarry/library-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/library/model"
)

// Repo implements repo.Repo[T] on top of GORM.
type Repo[T model.Entity] struct {
	db   *gorm.DB
	kind string
	// columns lists the mutable scalar columns written by Update.
	columns func(T) map[string]any
	// eager adds the joins used by every read.
	eager func(*gorm.DB) *gorm.DB
}

func NewAuthorRepo(db *gorm.DB) *Repo[model.Author] {
	return &Repo[model.Author]{
		db:   db,
		kind: "author",
		columns: func(a model.Author) map[string]any {
			return map[string]any{"name": a.Name}
		},
	}
}

func NewCategoryRepo(db *gorm.DB) *Repo[model.Category] {
	return &Repo[model.Category]{
		db:   db,
		kind: "category",
		columns: func(c model.Category) map[string]any {
			return map[string]any{"name": c.Name}
		},
	}
}

// NewBookRepo returns a repository whose reads eager-load Author and
// Category with a LEFT JOIN.
func NewBookRepo(db *gorm.DB) *Repo[model.Book] {
	return &Repo[model.Book]{
		db:   db,
		kind: "book",
		columns: func(b model.Book) map[string]any {
			return map[string]any{
				"title":       b.Title,
				"author_id":   b.AuthorID,
				"category_id": b.CategoryID,
			}
		},
		eager: func(tx *gorm.DB) *gorm.DB {
			return tx.Joins("Author").Joins("Category")
		},
	}
}

func (r *Repo[T]) read(ctx context.Context) *gorm.DB {
	tx := r.db.WithContext(ctx)
	if r.eager != nil {
		tx = r.eager(tx)
	}
	return tx
}

func (r *Repo[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	res := r.read(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}}).
		Find(&out)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "List "+r.kind)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Repo[T]) Get(ctx context.Context, id int) (T, error) {
	var v T
	res := r.read(ctx).First(&v, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return v, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return v, customErrors.WrapInternal(err, "Get "+r.kind)
	}
	return v, nil
}

// Create inserts v without touching its associations and returns the row as
// read back from the store.
func (r *Repo[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	res := r.db.WithContext(ctx).Omit(clause.Associations).Create(&v)
	if err := res.Error; err != nil {
		return zero, r.writeErr("Create", err)
	}
	return r.Get(ctx, v.Key())
}

// Update writes every mutable column of v and bumps its version. When
// v carries a non-zero version the stored row must still have it.
func (r *Repo[T]) Update(ctx context.Context, v T) error {
	values := r.columns(v)
	values["version"] = gorm.Expr("version + 1")

	q := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", v.Key())
	if rev := v.Revision(); rev != 0 {
		q = q.Where("version = ?", rev)
	}
	res := q.Updates(values)
	if err := res.Error; err != nil {
		return r.writeErr("Update", err)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", v.Key()).Count(&n).Error; err != nil {
		return customErrors.WrapInternal(err, "Update "+r.kind)
	}
	if n == 0 {
		return customErrors.ErrNotFound
	}
	return customErrors.NewConflict(r.kind + " was modified concurrently")
}

func (r *Repo[T]) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if err := res.Error; err != nil {
		if isForeignKeyViolation(err) {
			return customErrors.NewConflict(r.kind + " is still referenced")
		}
		return customErrors.WrapInternal(err, "Delete "+r.kind)
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (r *Repo[T]) writeErr(op string, err error) error {
	switch {
	case isDuplicateKey(err):
		return customErrors.ErrAlreadyExists
	case isForeignKeyViolation(err):
		return customErrors.NewInvalidArgument(r.kind + " references a missing row")
	}
	return customErrors.WrapInternal(err, op+" "+r.kind)
}

// Drivers translate most constraint errors when TranslateError is set. The
// message checks cover connections opened without it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint")
}
