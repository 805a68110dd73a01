// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes; the only behavior is password digesting
// and the article row transform.
package model

import (
	"time"

	"github.com/maxviazov/egretwind/internal/credential"
)

// Gender is the optional self-declared gender on a profile.
type Gender int16

const (
	GenderUnknown Gender = 0
	GenderMale    Gender = 1
	GenderFemale  Gender = 2
)

// UserStatus is the moderation state of an account.
type UserStatus int16

const (
	UserStatusNormal        UserStatus = 0
	UserStatusDisabled      UserStatus = 1
	UserStatusPendingReview UserStatus = 2
)

// Valid reports whether s is a known status.
func (s UserStatus) Valid() bool {
	return s >= UserStatusNormal && s <= UserStatusPendingReview
}

// User is an account. PasswordHash only ever holds a digest and is never serialized.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	PhoneNumber  *string    `json:"phone_number"`
	Nickname     *string    `json:"nickname"`
	Avatar       *string    `json:"avatar"`
	Gender       Gender     `json:"gender"`
	Bio          *string    `json:"bio"`
	Location     *string    `json:"location"`
	IsActive     bool       `json:"is_active"`
	IsAdmin      bool       `json:"is_admin"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SetPassword replaces the stored digest with one derived from plain.
func (u *User) SetPassword(plain string) error {
	digest, err := credential.Hash(plain)
	if err != nil {
		return err
	}
	u.PasswordHash = digest
	return nil
}

// CheckPassword reports whether plain matches the stored digest.
func (u User) CheckPassword(plain string) bool {
	return credential.Verify(u.PasswordHash, plain)
}

// UserProfile is the public slice of a user shown in the directory listing.
type UserProfile struct {
	Username string  `json:"username"`
	Location *string `json:"location"`
}

// ArticleStatus is the publication state of an article.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePublished ArticleStatus = "published"
)

// Valid reports whether s is a known status.
func (s ArticleStatus) Valid() bool {
	return s == ArticleDraft || s == ArticlePublished
}

// Author is the part of a user that travels with an article.
type Author struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Article is a piece of content owned by exactly one author.
// Deleting the author deletes the article.
type Article struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Author      Author        `json:"author"`
	Status      ArticleStatus `json:"status"`
	PublishedAt *time.Time    `json:"published_at"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ArticleView is the wire shape of an article row in list and page responses.
type ArticleView struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Author      Author        `json:"author"`
	Status      ArticleStatus `json:"status"`
	PublishedAt *time.Time    `json:"published_at"`
}

// NewArticleView is the row transform applied to every listed article.
func NewArticleView(a Article) ArticleView {
	return ArticleView{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Author:      a.Author,
		Status:      a.Status,
		PublishedAt: a.PublishedAt,
	}
}
