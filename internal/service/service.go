// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/egretwind/internal/model"
	"github.com/maxviazov/egretwind/internal/pagination"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error, or nil when fe is empty.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// ArticleService defines article read use cases plus creation for seeding.
type ArticleService interface {
	ListArticles(ctx context.Context) ([]model.ArticleView, error)
	PageArticles(ctx context.Context, currentPage, pageSize int) (pagination.Page[model.ArticleView], error)
	GetArticle(ctx context.Context, id int64) (model.ArticleView, error)
	CreateArticle(ctx context.Context, in NewArticle) (model.Article, error)
}

// UserService defines account use cases.
type UserService interface {
	CreateUser(ctx context.Context, in NewUser) (model.User, error)
	ListProfiles(ctx context.Context) ([]model.UserProfile, error)
}

// ViewCache is an optional read-through store for rendered listings.
// A miss is reported as (false, nil); errors never fail the request.
type ViewCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, val any) error
}
