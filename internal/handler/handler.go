package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/egretwind/internal/service"
)

// DefaultRequestTimeout bounds a single request when none is configured.
const DefaultRequestTimeout = 5 * time.Second

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, repo Pinger, articles service.ArticleService, users service.UserService, timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	h := NewHealthHandler(repo)

	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r)

	NewArticleHandler(articles, timeout).Register(r.Group(ArticlePrefix))
	NewUserHandler(users, timeout).Register(r.Group(UserPrefix))
}
