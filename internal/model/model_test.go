package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticleView_Shape(t *testing.T) {
	published := time.Date(2025, 11, 27, 21, 0, 0, 0, time.UTC)
	a := Article{
		ID:          3,
		Title:       "Hello",
		Content:     "Body",
		Author:      Author{ID: 9, Username: "egret"},
		Status:      ArticlePublished,
		PublishedAt: &published,
		CreatedAt:   published.Add(-time.Hour),
	}

	raw, err := json.Marshal(NewArticleView(a))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.ElementsMatch(t, []string{"id", "title", "content", "author", "status", "published_at"}, keys(got))
	assert.Equal(t, map[string]any{"id": float64(9), "username": "egret"}, got["author"])
	assert.Equal(t, "published", got["status"])
	assert.Equal(t, "2025-11-27T21:00:00Z", got["published_at"])
}

func TestNewArticleView_DraftHasNullPublishedAt(t *testing.T) {
	raw, err := json.Marshal(NewArticleView(Article{ID: 1, Status: ArticleDraft}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"published_at":null`)
}

func TestUser_PasswordNeverSerialized(t *testing.T) {
	u := User{Username: "egret", Email: "e@example.com"}
	require.NoError(t, u.SetPassword("hunter2"))
	assert.NotEqual(t, "hunter2", u.PasswordHash)
	assert.True(t, u.CheckPassword("hunter2"))
	assert.False(t, u.CheckPassword("hunter3"))

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), u.PasswordHash)
	assert.NotContains(t, string(raw), "hunter2")
}

func TestStatusValid(t *testing.T) {
	assert.True(t, ArticleDraft.Valid())
	assert.True(t, ArticlePublished.Valid())
	assert.False(t, ArticleStatus("archived").Valid())
	assert.True(t, UserStatusPendingReview.Valid())
	assert.False(t, UserStatus(3).Valid())
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
