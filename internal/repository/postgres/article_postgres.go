package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/egretwind/internal/model"
	"github.com/maxviazov/egretwind/internal/repository"
)

// articleSelect joins every article with its author. The ORDER BY must stay total
// (id breaks ties) so offset windows never overlap or skip rows.
const (
	articleSelect = `SELECT a.id, a.title, a.content, a.status, a.published_at, a.created_at, a.updated_at,
		u.id, u.username
	 FROM articles a
	 JOIN users u ON u.id = a.author_id`
	articleOrder = ` ORDER BY a.published_at ASC NULLS LAST, a.id ASC`
)

type articleRepository struct{ pool *pgxpool.Pool }

func NewArticleRepository(pool *pgxpool.Pool) repository.ArticleRepository {
	return &articleRepository{pool: pool}
}

func scanArticle(row pgx.Row) (model.Article, error) {
	var a model.Article
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Status, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
		&a.Author.ID, &a.Author.Username)
	return a, err
}

func (r *articleRepository) Create(ctx context.Context, a model.Article) (model.Article, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Article{}, err
	}
	exec := getQ(ctx, r.pool)
	var id int64
	err := exec.QueryRow(ctx,
		`INSERT INTO articles (title, content, author_id, status, published_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		a.Title, a.Content, a.Author.ID, a.Status, a.PublishedAt,
	).Scan(&id)
	if err != nil {
		return model.Article{}, repository.MapPgError(err)
	}
	return r.GetByID(ctx, id)
}

func (r *articleRepository) GetByID(ctx context.Context, id int64) (model.Article, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Article{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanArticle(exec.QueryRow(ctx, articleSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Article{}, repository.ErrNotFound
		}
		return model.Article{}, repository.MapPgError(err)
	}
	return out, nil
}

// Count reports every article; author_id is NOT NULL so the join never drops rows.
func (r *articleRepository) Count(ctx context.Context) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var total int
	exec := getQ(ctx, r.pool)
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&total); err != nil {
		return 0, repository.MapPgError(err)
	}
	return total, nil
}

func (r *articleRepository) Fetch(ctx context.Context, offset, limit int) ([]model.Article, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	limit, offset = sanitizeLimitOffset(limit, offset)
	return r.query(ctx, limit, articleSelect+articleOrder+` LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *articleRepository) All(ctx context.Context) ([]model.Article, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	return r.query(ctx, 16, articleSelect+articleOrder)
}

func (r *articleRepository) query(ctx context.Context, capHint int, sql string, args ...any) ([]model.Article, error) {
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.Article, 0, capHint)
	for rows.Next() {
		it, err := scanArticle(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, it)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.ArticleRepository = (*articleRepository)(nil)
