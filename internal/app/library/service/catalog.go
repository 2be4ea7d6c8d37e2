package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	customErrors "github.com/Miraines/MoonyAndStarry/library-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/library/model"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/library/repo"
)

// Service is the CRUD contract every catalog entity exposes to transports.
type Service[T model.Entity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id int, v T) error
	Delete(ctx context.Context, id int) error
}

type catalog[T model.Entity] struct {
	kind string
	repo repo.Repo[T]
	v    *validator.Validate
	log  *zap.Logger
}

// New returns a Service over r. kind names the entity in logs.
func New[T model.Entity](kind string, r repo.Repo[T], v *validator.Validate, log *zap.Logger) Service[T] {
	return &catalog[T]{
		kind: kind,
		repo: r,
		v:    v,
		log:  log.With(zap.String("entity", kind)),
	}
}

func NewBooks(r repo.BookRepo, v *validator.Validate, log *zap.Logger) Service[model.Book] {
	return New[model.Book]("book", r, v, log)
}

func NewAuthors(r repo.AuthorRepo, v *validator.Validate, log *zap.Logger) Service[model.Author] {
	return New[model.Author]("author", r, v, log)
}

func NewCategories(r repo.CategoryRepo, v *validator.Validate, log *zap.Logger) Service[model.Category] {
	return New[model.Category]("category", r, v, log)
}

func (c *catalog[T]) List(ctx context.Context) ([]T, error) {
	items, err := c.repo.List(ctx)
	if err != nil {
		return nil, c.fail("List", err)
	}
	return items, nil
}

func (c *catalog[T]) Get(ctx context.Context, id int) (T, error) {
	var zero T
	if id <= 0 {
		return zero, customErrors.ErrNotFound
	}
	item, err := c.repo.Get(ctx, id)
	if err != nil {
		return zero, c.fail("Get", err)
	}
	return item, nil
}

// Create stores v as sent. A non-zero id supplied by the caller is kept.
func (c *catalog[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	if v.Key() < 0 {
		return zero, customErrors.NewInvalidArgument("id must not be negative")
	}
	if err := c.v.Struct(v); err != nil {
		return zero, customErrors.NewInvalidArgument(err.Error())
	}

	created, err := c.repo.Create(ctx, v)
	if err != nil {
		return zero, c.fail("Create", err)
	}
	c.log.Info("created", zap.Int("id", created.Key()))
	return created, nil
}

// Update replaces every field of row id. The body must carry the same id.
func (c *catalog[T]) Update(ctx context.Context, id int, v T) error {
	if id != v.Key() {
		return customErrors.ErrNotFound
	}
	if err := c.v.Struct(v); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	if err := c.repo.Update(ctx, v); err != nil {
		if customErrors.IsConflict(err) {
			c.log.Warn("concurrent update rejected", zap.Int("id", id))
		}
		return c.fail("Update", err)
	}
	c.log.Info("updated", zap.Int("id", id))
	return nil
}

func (c *catalog[T]) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return customErrors.ErrNotFound
	}
	if err := c.repo.Delete(ctx, id); err != nil {
		return c.fail("Delete", err)
	}
	c.log.Info("deleted", zap.Int("id", id))
	return nil
}

// fail passes domain errors through and wraps everything else as internal.
func (c *catalog[T]) fail(op string, err error) error {
	switch {
	case customErrors.IsNotFound(err),
		customErrors.IsConflict(err),
		customErrors.IsAlreadyExists(err),
		customErrors.IsInvalidArgument(err):
		return err
	case customErrors.IsInternal(err):
		c.log.Error(op+" failed", zap.Error(err))
		return err
	}
	c.log.Error(op+" failed", zap.Error(err))
	return customErrors.WrapInternal(err, c.kind+" "+op)
}

// ParseID converts a path segment to an entity id.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, customErrors.NewInvalidArgument("id must be a positive integer")
	}
	return id, nil
}
