// Package pagination turns an ordered row source into bounded, transformed pages.
// It knows nothing about storage: repositories plug in through Source and Lister.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// DefaultMaxPageSize is the page size ceiling used when none is configured.
const DefaultMaxPageSize = 100

// ErrInvalidRequest marks page parameters that fall outside the accepted bounds.
var ErrInvalidRequest = errors.New("invalid page request")

// RequestError names the offending parameter and unwraps to ErrInvalidRequest.
type RequestError struct {
	Field  string
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidRequest, e.Field, e.Reason)
}

func (e *RequestError) Unwrap() error { return ErrInvalidRequest }

// Source is an ordered collection that can report its full size and yield any
// contiguous window of rows in a stable order.
type Source[T any] interface {
	// Count returns the number of matching rows, ignoring any window.
	Count(ctx context.Context) (int, error)
	// Fetch returns at most limit rows starting at offset.
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
}

// Lister yields every row of an ordered collection.
type Lister[T any] interface {
	All(ctx context.Context) ([]T, error)
}

// Transform maps one stored row to its output representation.
type Transform[T, R any] func(T) R

// Request is a 1-based page number and a page size, both caller supplied.
type Request struct {
	Number int
	Size   int
}

// Offset is the index of the first row covered by the request.
// Only meaningful once Check has accepted the request.
func (r Request) Offset() int { return (r.Number - 1) * r.Size }

// Check validates the request. A non-positive maxSize leaves the page size
// without an upper bound.
func (r Request) Check(maxSize int) error {
	if r.Number < 1 {
		return &RequestError{Field: "currentPage", Reason: "must be >= 1"}
	}
	if r.Size < 1 {
		return &RequestError{Field: "pageSize", Reason: "must be >= 1"}
	}
	if maxSize > 0 && r.Size > maxSize {
		return &RequestError{Field: "pageSize", Reason: fmt.Sprintf("must be <= %d", maxSize)}
	}
	// the offset must fit in an int
	if r.Number-1 > math.MaxInt/r.Size {
		return &RequestError{Field: "currentPage", Reason: "is too large"}
	}
	return nil
}

// Page is one window of transformed rows plus the size of the whole collection.
type Page[R any] struct {
	TotalCount  int `json:"totalCount"`
	Rows        []R `json:"rows"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// Paginate counts src, fetches the window addressed by req and transforms each
// row in order. A window past the end yields an empty page without touching rows.
func Paginate[T, R any](ctx context.Context, req Request, src Source[T], fn Transform[T, R]) (Page[R], error) {
	if err := req.Check(0); err != nil {
		return Page[R]{}, err
	}

	total, err := src.Count(ctx)
	if err != nil {
		return Page[R]{}, err
	}

	page := Page[R]{
		TotalCount:  total,
		Rows:        make([]R, 0),
		CurrentPage: req.Number,
		PageSize:    req.Size,
	}

	offset := req.Offset()
	if offset >= total {
		return page, nil
	}

	rows, err := src.Fetch(ctx, offset, req.Size)
	if err != nil {
		return Page[R]{}, err
	}
	if len(rows) > req.Size {
		rows = rows[:req.Size]
	}
	page.Rows = apply(rows, fn)
	return page, nil
}

// List transforms every row of src, preserving order.
func List[T, R any](ctx context.Context, src Lister[T], fn Transform[T, R]) ([]R, error) {
	rows, err := src.All(ctx)
	if err != nil {
		return nil, err
	}
	return apply(rows, fn), nil
}

func apply[T, R any](rows []T, fn Transform[T, R]) []R {
	out := make([]R, 0, len(rows))
	for _, row := range rows {
		out = append(out, fn(row))
	}
	return out
}
