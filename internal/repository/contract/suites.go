package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/maxviazov/egretwind/internal/model"
	"github.com/maxviazov/egretwind/internal/pagination"
	"github.com/maxviazov/egretwind/internal/repository"
)

type UserFactory func(t *testing.T) (repository.UserRepository, func())

type ArticleFactory func(t *testing.T) (repo repository.ArticleRepository, createAuthor func(ctx context.Context, username string) (int64, error), cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, users repository.UserRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func newUser(name string) model.User {
	return model.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "$2a$04$placeholderdigestplaceholderdigestplaceholderdigestpl",
		IsActive:     true,
	}
}

func RunUserRepositoryContract(t *testing.T, makeRepo UserFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		loc := "Xiamen"
		u := newUser("egret")
		u.Location = &loc
		created, err := repo.Create(ctx, u)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == 0 || created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Fatalf("server-assigned fields missing: %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Username != "egret" || got.Location == nil || *got.Location != loc || got.Status != model.UserStatusNormal {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate_username_and_email", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, newUser("dup")); err != nil {
			t.Fatalf("seed: %v", err)
		}
		sameName := newUser("dup")
		sameName.Email = "other@example.com"
		if _, err := repo.Create(ctx, sameName); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists for username, got %v", err)
		}
		sameEmail := newUser("other")
		sameEmail.Email = "dup@example.com"
		if _, err := repo.Create(ctx, sameEmail); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists for email, got %v", err)
		}
	})

	t.Run("list_profiles_newest_first", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for _, n := range []string{"first", "second", "third"} {
			if _, err := repo.Create(ctx, newUser(n)); err != nil {
				t.Fatalf("seed %s: %v", n, err)
			}
		}
		got, err := repo.ListProfiles(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 3 || got[0].Username != "third" || got[2].Username != "first" {
			t.Fatalf("unexpected order: %+v", got)
		}
	})
}

func RunArticleRepositoryContract(t *testing.T, makeRepo ArticleFactory) {
	t.Helper()

	t.Run("create_and_get_with_author", func(t *testing.T) {
		repo, mkAuthor, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		authorID, err := mkAuthor(ctx, "writer")
		if err != nil {
			t.Fatalf("seed author: %v", err)
		}
		created, err := repo.Create(ctx, model.Article{Title: "T", Content: "C", Author: model.Author{ID: authorID}, Status: model.ArticleDraft})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.Author.Username != "writer" || created.PublishedAt != nil {
			t.Fatalf("unexpected article: %+v", created)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 4242424)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown_author_conflict", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Create(context.Background(), model.Article{Title: "T", Author: model.Author{ID: 9999999}, Status: model.ArticleDraft})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict on FK violation, got %v", err)
		}
	})

	t.Run("ordered_source_windows", func(t *testing.T) {
		repo, mkAuthor, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		authorID, err := mkAuthor(ctx, "windows")
		if err != nil {
			t.Fatalf("seed author: %v", err)
		}
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		// insert out of order: ordering must come from published_at, drafts last
		for i, offset := range []int{3, 1, 4, 0, -1} {
			a := model.Article{Title: fmt.Sprintf("a%d", i), Author: model.Author{ID: authorID}, Status: model.ArticleDraft}
			if offset >= 0 {
				at := base.Add(time.Duration(offset) * time.Hour)
				a.PublishedAt = &at
				a.Status = model.ArticlePublished
			}
			if _, err := repo.Create(ctx, a); err != nil {
				t.Fatalf("seed article %d: %v", i, err)
			}
		}

		all, err := repo.All(ctx)
		if err != nil {
			t.Fatalf("all: %v", err)
		}
		want := []string{"a3", "a1", "a0", "a2", "a4"}
		if titles(all) != fmt.Sprint(want) {
			t.Fatalf("unexpected order: %v", titles(all))
		}

		total, err := repo.Count(ctx)
		if err != nil || total != 5 {
			t.Fatalf("count: %d %v", total, err)
		}

		page, err := pagination.Paginate(ctx, pagination.Request{Number: 2, Size: 2}, repo, model.NewArticleView)
		if err != nil {
			t.Fatalf("paginate: %v", err)
		}
		if page.TotalCount != 5 || len(page.Rows) != 2 || page.Rows[0].Title != "a0" || page.Rows[1].Title != "a2" {
			t.Fatalf("unexpected page: %+v", page)
		}
	})

	t.Run("author_delete_cascades", func(t *testing.T) {
		repo, mkAuthor, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		authorID, err := mkAuthor(ctx, "cascade")
		if err != nil {
			t.Fatalf("seed author: %v", err)
		}
		created, err := repo.Create(ctx, model.Article{Title: "gone", Author: model.Author{ID: authorID}, Status: model.ArticleDraft})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := deleteUser(ctx, authorID); err != nil {
			t.Fatalf("delete author: %v", err)
		}
		if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected cascade delete, got %v", err)
		}
	})
}

// DeleteUser is set by the driver test so the cascade case can remove an author
// without widening the repository interface.
var DeleteUser func(ctx context.Context, id int64) error

func deleteUser(ctx context.Context, id int64) error {
	if DeleteUser == nil {
		return errors.New("contract: DeleteUser hook not set")
	}
	return DeleteUser(ctx, id)
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, users, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := users.Create(ctx, newUser("txcommit"))
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := users.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, users, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		marker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := users.Create(ctx, newUser("txrollback"))
			if err != nil {
				return err
			}
			createdID = out.ID
			return marker
		})
		if !errors.Is(err, marker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := users.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}

func titles(as []model.Article) string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.Title)
	}
	return fmt.Sprint(out)
}
