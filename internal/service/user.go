package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/egretwind/internal/model"
	"github.com/maxviazov/egretwind/internal/repository"
	"github.com/rs/zerolog"
)

// NewUser is the input for CreateUser. Tags mirror the column limits.
type NewUser struct {
	Username    string           `json:"username" validate:"required,max=64"`
	Email       string           `json:"email" validate:"required,email,max=128"`
	Password    string           `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber *string          `json:"phone_number" validate:"omitempty,max=32"`
	Nickname    *string          `json:"nickname" validate:"omitempty,max=64"`
	Avatar      *string          `json:"avatar" validate:"omitempty,url,max=256"`
	Gender      model.Gender     `json:"gender" validate:"min=0,max=2"`
	Bio         *string          `json:"bio" validate:"omitempty,max=512"`
	Location    *string          `json:"location" validate:"omitempty,max=128"`
	IsAdmin     bool             `json:"is_admin"`
	Status      model.UserStatus `json:"status" validate:"min=0,max=2"`
}

type userService struct {
	users    repository.UserRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewUserService(users repository.UserRepository, logger zerolog.Logger) UserService {
	l := logger.With().Str("module", "service").Str("component", "user").Logger()
	return &userService{users: users, validate: newValidator(), log: l}
}

func (s *userService) CreateUser(ctx context.Context, in NewUser) (model.User, error) {
	start := time.Now()
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := s.validate.Struct(in); err != nil {
		ferrs := validationFieldErrors(err)
		s.log.Debug().Interface("field_errors", ferrs).Str("username", in.Username).Msg("user validation failed")
		return model.User{}, NewInvalidInputError(ferrs)
	}

	u := model.User{
		Username:    in.Username,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Nickname:    in.Nickname,
		Avatar:      in.Avatar,
		Gender:      in.Gender,
		Bio:         in.Bio,
		Location:    in.Location,
		IsActive:    true,
		IsAdmin:     in.IsAdmin,
		Status:      in.Status,
	}
	if err := u.SetPassword(in.Password); err != nil {
		return model.User{}, NewInvalidInputError([]FieldError{{Field: "password", Message: err.Error()}})
	}

	out, err := s.users.Create(ctx, u)
	if err != nil {
		s.log.Error().Err(err).Str("username", u.Username).Msg("create user failed")
		return model.User{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("user_id", out.ID).Msg("user created")
	return out, nil
}

func (s *userService) ListProfiles(ctx context.Context) ([]model.UserProfile, error) {
	res, err := s.users.ListProfiles(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list user profiles failed")
		return nil, err
	}
	return res, nil
}
