package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/egretwind/internal/service"
	"github.com/maxviazov/egretwind/pkg/response"
)

type ArticleHandler struct {
	svc     service.ArticleService
	timeout time.Duration
}

func NewArticleHandler(svc service.ArticleService, timeout time.Duration) *ArticleHandler {
	return &ArticleHandler{svc: svc, timeout: timeout}
}

func (h *ArticleHandler) Register(g *gin.RouterGroup) {
	g.GET("/list", h.list)
	g.GET("/page/:currentPage/:pageSize", h.page)
	g.GET("/:id", h.getByID)
}

func (h *ArticleHandler) list(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	views, err := h.svc.ListArticles(ctx)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, views)
}

func (h *ArticleHandler) page(c *gin.Context) {
	var ferrs []service.FieldError
	number, err := strconv.Atoi(c.Param("currentPage"))
	if err != nil {
		ferrs = append(ferrs, service.FieldError{Field: "currentPage", Message: "must be an integer"})
	}
	size, err := strconv.Atoi(c.Param("pageSize"))
	if err != nil {
		ferrs = append(ferrs, service.FieldError{Field: "pageSize", Message: "must be an integer"})
	}
	if err := service.NewInvalidInputError(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	page, err := h.svc.PageArticles(ctx, number, size)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, page)
}

func (h *ArticleHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be an integer"}}))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	view, err := h.svc.GetArticle(ctx, id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, view)
}
