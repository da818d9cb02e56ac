package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/suleymanmyradov/lingua-gateway/shared/models"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewUserRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestGetByExternalIDReturnsNotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, external_id")).
		WithArgs("ext-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByExternalID(context.Background(), "ext-1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetByExternalIDReturnsUser(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	id := uuid.New()
	now := time.Now()
	cols := []string{"id", "external_id", "first_name", "last_name", "username", "role",
		"photo_url", "visible", "language", "can_write_to_pm", "created_at", "updated_at"}
	rows := sqlmock.NewRows(cols).AddRow(id, "ext-1", "Jane", "Doe", "jd", "USER",
		"", true, "en", false, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, external_id")).
		WithArgs("ext-1").
		WillReturnRows(rows)

	u, err := repo.GetByExternalID(context.Background(), "ext-1")
	if err != nil {
		t.Fatalf("get by external id: %v", err)
	}
	if u.ID != id || u.ExternalID != "ext-1" || u.Role != models.RoleUser {
		t.Errorf("user = %+v", u)
	}
}
