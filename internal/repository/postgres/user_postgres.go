package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/egretwind/internal/model"
	"github.com/maxviazov/egretwind/internal/repository"
)

const userColumns = `id, username, email, password, phone_number, nickname, avatar, gender, bio, location,
	is_active, is_admin, status, created_at, updated_at`

type userRepository struct{ pool *pgxpool.Pool }

func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.PhoneNumber, &u.Nickname, &u.Avatar,
		&u.Gender, &u.Bio, &u.Location, &u.IsActive, &u.IsAdmin, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *userRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.User{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO users (username, email, password, phone_number, nickname, avatar, gender, bio, location,
			is_active, is_admin, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+userColumns,
		u.Username, u.Email, u.PasswordHash, u.PhoneNumber, u.Nickname, u.Avatar, u.Gender, u.Bio, u.Location,
		u.IsActive, u.IsAdmin, u.Status,
	)
	out, err := scanUser(row)
	if err != nil {
		return model.User{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.User{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanUser(exec.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, repository.ErrNotFound
		}
		return model.User{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *userRepository) ListProfiles(ctx context.Context) ([]model.UserProfile, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT username, location FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.UserProfile, 0, 16)
	for rows.Next() {
		var p model.UserProfile
		if err := rows.Scan(&p.Username, &p.Location); err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.UserRepository = (*userRepository)(nil)
