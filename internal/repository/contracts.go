package repository

import (
	"context"

	"github.com/maxviazov/egretwind/internal/model"
	"github.com/maxviazov/egretwind/internal/pagination"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// UserRepository declares persistence operations for users.
// Username and email are unique; a duplicate surfaces as ErrAlreadyExists.
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	// ListProfiles returns every user's public profile, newest account first.
	ListProfiles(ctx context.Context) ([]model.UserProfile, error)
}

// ArticleRepository declares persistence operations for articles.
// The repository doubles as the ordered source for listings: all articles joined
// with their author, ordered by publish time (unpublished last) then id.
type ArticleRepository interface {
	pagination.Source[model.Article]
	pagination.Lister[model.Article]

	Create(ctx context.Context, a model.Article) (model.Article, error)
	GetByID(ctx context.Context, id int64) (model.Article, error)
}
