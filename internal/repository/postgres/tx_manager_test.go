package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/egretwind/internal/pagination"
)

func TestSanitizeLimitOffset(t *testing.T) {
	l, o := sanitizeLimitOffset(0, -3)
	assert.Equal(t, pagination.DefaultMaxPageSize, l)
	assert.Equal(t, 0, o)

	l, o = sanitizeLimitOffset(7, 14)
	assert.Equal(t, 7, l)
	assert.Equal(t, 14, o)
}

func TestNilPoolIsRejected(t *testing.T) {
	ctx := context.Background()
	_, err := NewArticleRepository(nil).Count(ctx)
	assert.Error(t, err)
	_, err = NewUserRepository(nil).ListProfiles(ctx)
	assert.Error(t, err)
	assert.Error(t, NewPinger(nil).Ping(ctx))
	assert.Error(t, NewTxManager(nil).WithinTx(ctx, func(context.Context) error { return nil }))
}
