package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/suleymanmyradov/lingua-gateway/shared/models"
)

// ErrNotFound is returned by lookups that find no matching row.
var ErrNotFound = errors.New("repository: record not found")

const (
	selectUserByIDQuery = `
		SELECT id, external_id, first_name, last_name, username, role,
		       photo_url, visible, language, can_write_to_pm, created_at, updated_at
		FROM users WHERE id = $1`

	selectUserByExternalIDQuery = `
		SELECT id, external_id, first_name, last_name, username, role,
		       photo_url, visible, language, can_write_to_pm, created_at, updated_at
		FROM users WHERE external_id = $1`

	insertUserQuery = `
		INSERT INTO users (id, external_id, first_name, last_name, username, role,
		                    photo_url, visible, language, can_write_to_pm, created_at, updated_at)
		VALUES (:id, :external_id, :first_name, :last_name, :username, :role,
		        :photo_url, :visible, :language, :can_write_to_pm, :created_at, :updated_at)`

	updateUserQuery = `
		UPDATE users SET first_name = :first_name, last_name = :last_name,
		       username = :username, photo_url = :photo_url, language = :language,
		       can_write_to_pm = :can_write_to_pm, updated_at = :updated_at
		WHERE id = :id`
)

// UserRepository persists the identities the authenticity pipeline
// reconciles on every request.
type UserRepository struct {
	*BaseRepository
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.DB().GetContext(ctx, &u, selectUserByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logx.WithContext(ctx).Errorf("get user by id: %v", err)
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// GetByExternalID looks up a user by the asserted external identity (the
// Telegram/Google subject). Returns ErrNotFound when absent so callers can
// decide whether to create the row.
func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var u models.User
	if err := r.DB().GetContext(ctx, &u, selectUserByExternalIDQuery, externalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logx.WithContext(ctx).Errorf("get user by external id: %v", err)
		return nil, fmt.Errorf("get user by external id: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if _, err := r.DB().NamedExecContext(ctx, insertUserQuery, u); err != nil {
		logx.WithContext(ctx).Errorf("create user: %v", err)
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update pushes the caller-asserted fields back to storage. Called by the
// reconciliation step only when the asserted fields actually diverge from
// the stored row, to avoid a write on every request.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	if _, err := r.DB().NamedExecContext(ctx, updateUserQuery, u); err != nil {
		logx.WithContext(ctx).Errorf("update user: %v", err)
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
