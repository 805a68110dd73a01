package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/maxviazov/egretwind/internal/model"
	"github.com/maxviazov/egretwind/internal/repository"
	"github.com/maxviazov/egretwind/internal/service"
)

// Fixture is the seed file layout: users, each owning zero or more articles.
type Fixture struct {
	Users []FixtureUser `mapstructure:"users"`
}

type FixtureUser struct {
	Username string           `mapstructure:"username"`
	Email    string           `mapstructure:"email"`
	Password string           `mapstructure:"password"`
	Nickname string           `mapstructure:"nickname"`
	Location string           `mapstructure:"location"`
	IsAdmin  bool             `mapstructure:"is_admin"`
	Articles []FixtureArticle `mapstructure:"articles"`
}

type FixtureArticle struct {
	Title   string `mapstructure:"title"`
	Content string `mapstructure:"content"`
	Status  string `mapstructure:"status"`
	// PublishedAt is RFC 3339; empty leaves the article unpublished in listings.
	PublishedAt string `mapstructure:"published_at"`
}

// LoadFixture reads a seed file in any format viper understands.
func LoadFixture(path string) (Fixture, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var fx Fixture
	if err := v.Unmarshal(&fx); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	return fx, nil
}

type seeder struct {
	tx       repository.TxManager
	users    service.UserService
	articles service.ArticleService
}

type seedStats struct {
	Users    int
	Articles int
}

// Seed writes every user then their articles inside one transaction.
func (s seeder) Seed(ctx context.Context, fx Fixture) (seedStats, error) {
	var st seedStats
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		st = seedStats{}
		for _, fu := range fx.Users {
			u, err := s.users.CreateUser(ctx, service.NewUser{
				Username: fu.Username,
				Email:    fu.Email,
				Password: fu.Password,
				Nickname: optional(fu.Nickname),
				Location: optional(fu.Location),
				IsAdmin:  fu.IsAdmin,
			})
			if err != nil {
				return fmt.Errorf("user %q: %w", fu.Username, err)
			}
			st.Users++

			for _, fa := range fu.Articles {
				in := service.NewArticle{
					Title:    fa.Title,
					Content:  fa.Content,
					AuthorID: u.ID,
					Status:   model.ArticleStatus(fa.Status),
				}
				if fa.PublishedAt != "" {
					at, err := time.Parse(time.RFC3339, fa.PublishedAt)
					if err != nil {
						return fmt.Errorf("article %q: published_at: %w", fa.Title, err)
					}
					in.PublishedAt = &at
				}
				if _, err := s.articles.CreateArticle(ctx, in); err != nil {
					return fmt.Errorf("article %q: %w", fa.Title, err)
				}
				st.Articles++
			}
		}
		return nil
	})
	if err != nil {
		return seedStats{}, err
	}
	return st, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
