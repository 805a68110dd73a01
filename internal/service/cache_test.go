package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/egretwind/internal/model"
	"github.com/maxviazov/egretwind/internal/pagination"
)

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, val any) error {
	return m.Called(ctx, key, val).Error(0)
}

func TestArticleService_CacheKeys(t *testing.T) {
	cache := new(mockCache)
	cache.On("Get", mock.Anything, "articles:list", mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, "articles:list", mock.AnythingOfType("[]model.ArticleView")).Return(nil).Once()
	cache.On("Get", mock.Anything, "articles:page:2:3", mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, "articles:page:2:3", mock.MatchedBy(func(p pagination.Page[model.ArticleView]) bool {
		return p.TotalCount == 4 && len(p.Rows) == 1
	})).Return(nil).Once()

	svc := newArticleSvc(seededArticles(4), cache)
	ctx := context.Background()

	_, err := svc.ListArticles(ctx)
	require.NoError(t, err)
	_, err = svc.PageArticles(ctx, 2, 3)
	require.NoError(t, err)

	cache.AssertExpectations(t)
}

func TestArticleService_InvalidPageSkipsCache(t *testing.T) {
	cache := new(mockCache)
	svc := newArticleSvc(seededArticles(4), cache)

	_, err := svc.PageArticles(context.Background(), 0, 3)
	assert.Error(t, err)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}
