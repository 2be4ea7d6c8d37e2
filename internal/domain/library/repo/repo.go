package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/library/model"
)

// Repo is the persistence contract shared by books, authors and categories.
//
// Update returns ErrNotFound when the row is gone and ErrConflict when it
// exists but the version precondition failed. Delete returns ErrNotFound for
// a missing id.
type Repo[T model.Entity] interface {
	List(ctx context.Context) ([]T, error)

	Get(ctx context.Context, id int) (T, error)

	Create(ctx context.Context, v T) (T, error)

	Update(ctx context.Context, v T) error

	Delete(ctx context.Context, id int) error
}

type BookRepo = Repo[model.Book]

type AuthorRepo = Repo[model.Author]

type CategoryRepo = Repo[model.Category]
