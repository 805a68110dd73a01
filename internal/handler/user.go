package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/egretwind/internal/service"
	"github.com/maxviazov/egretwind/pkg/response"
)

// UserHandler serves the public user directory.
type UserHandler struct {
	svc     service.UserService
	timeout time.Duration
}

func NewUserHandler(svc service.UserService, timeout time.Duration) *UserHandler {
	return &UserHandler{svc: svc, timeout: timeout}
}

func (h *UserHandler) Register(g *gin.RouterGroup) {
	g.GET("/list", h.list)
}

func (h *UserHandler) list(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	profiles, err := h.svc.ListProfiles(ctx)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, profiles)
}
