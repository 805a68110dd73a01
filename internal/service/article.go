package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/maxviazov/egretwind/internal/model"
	"github.com/maxviazov/egretwind/internal/pagination"
	"github.com/maxviazov/egretwind/internal/repository"
	"github.com/rs/zerolog"
)

const maxTitleLen = 200

// NewArticle is the input for CreateArticle.
type NewArticle struct {
	Title       string
	Content     string
	AuthorID    int64
	Status      model.ArticleStatus
	PublishedAt *time.Time
}

type articleService struct {
	articles    repository.ArticleRepository
	users       repository.UserRepository
	cache       ViewCache
	maxPageSize int
	log         zerolog.Logger
}

// NewArticleService wires the article use cases. cache may be nil; maxPageSize <= 0
// falls back to pagination.DefaultMaxPageSize.
func NewArticleService(articles repository.ArticleRepository, users repository.UserRepository, cache ViewCache, maxPageSize int, logger zerolog.Logger) ArticleService {
	if maxPageSize <= 0 {
		maxPageSize = pagination.DefaultMaxPageSize
	}
	l := logger.With().Str("module", "service").Str("component", "article").Logger()
	return &articleService{articles: articles, users: users, cache: cache, maxPageSize: maxPageSize, log: l}
}

func (s *articleService) ListArticles(ctx context.Context) ([]model.ArticleView, error) {
	const key = "articles:list"
	var cached []model.ArticleView
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	views, err := pagination.List(ctx, s.articles, model.NewArticleView)
	if err != nil {
		s.log.Error().Err(err).Msg("list articles failed")
		return nil, err
	}
	s.cacheSet(ctx, key, views)
	return views, nil
}

func (s *articleService) PageArticles(ctx context.Context, currentPage, pageSize int) (pagination.Page[model.ArticleView], error) {
	req := pagination.Request{Number: currentPage, Size: pageSize}
	if err := req.Check(s.maxPageSize); err != nil {
		return pagination.Page[model.ArticleView]{}, pageError(err)
	}

	key := "articles:page:" + strconv.Itoa(currentPage) + ":" + strconv.Itoa(pageSize)
	var cached pagination.Page[model.ArticleView]
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	page, err := pagination.Paginate(ctx, req, s.articles, model.NewArticleView)
	if err != nil {
		s.log.Error().Err(err).Int("current_page", currentPage).Int("page_size", pageSize).Msg("page articles failed")
		return pagination.Page[model.ArticleView]{}, pageError(err)
	}
	s.cacheSet(ctx, key, page)
	return page, nil
}

func (s *articleService) GetArticle(ctx context.Context, id int64) (model.ArticleView, error) {
	if id <= 0 {
		return model.ArticleView{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return model.ArticleView{}, err
	}
	return model.NewArticleView(a), nil
}

// CreateArticle validates and stores an article. A published article without a
// publish time is accepted as is; the store does not infer one.
func (s *articleService) CreateArticle(ctx context.Context, in NewArticle) (model.Article, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Status == "" {
		in.Status = model.ArticleDraft
	}

	var ferrs []FieldError
	if in.Title == "" {
		ferrs = append(ferrs, FieldError{Field: "title", Message: "must not be empty"})
	} else if len([]rune(in.Title)) > maxTitleLen {
		ferrs = append(ferrs, FieldError{Field: "title", Message: "length must be <= 200"})
	}
	if in.AuthorID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "author_id", Message: "must be > 0"})
	}
	if !in.Status.Valid() {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of draft|published"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("article validation failed")
		return model.Article{}, err
	}

	// existence check gives a field error instead of a bare FK conflict
	if _, err := s.users.GetByID(ctx, in.AuthorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Article{}, NewInvalidInputError([]FieldError{{Field: "author_id", Message: "author does not exist"}})
		}
		return model.Article{}, err
	}

	out, err := s.articles.Create(ctx, model.Article{
		Title:       in.Title,
		Content:     in.Content,
		Author:      model.Author{ID: in.AuthorID},
		Status:      in.Status,
		PublishedAt: in.PublishedAt,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("author_id", in.AuthorID).Msg("create article failed")
		return model.Article{}, err
	}
	if out.Status == model.ArticlePublished && out.PublishedAt == nil {
		s.log.Warn().Int64("article_id", out.ID).Msg("published article has no publish time")
	}
	s.log.Info().Int64("article_id", out.ID).Int64("author_id", in.AuthorID).Msg("article created")
	return out, nil
}

func (s *articleService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("view cache read failed")
		return false
	}
	return hit
}

func (s *articleService) cacheSet(ctx context.Context, key string, val any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, val); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("view cache write failed")
	}
}

// pageError turns pagination bound violations into field-level validation errors.
func pageError(err error) error {
	var re *pagination.RequestError
	if errors.As(err, &re) {
		return NewInvalidInputError([]FieldError{{Field: re.Field, Message: re.Reason}})
	}
	return err
}
