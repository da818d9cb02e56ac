package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/suleymanmyradov/lingua-gateway/shared/models"
)

func newMockLessonRepo(t *testing.T) (*LessonRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewLessonRepository(sqlxDB), mock
}

func TestPickOrCreateReturnsSelectionOnHit(t *testing.T) {
	repo, mock := newMockLessonRepo(t)
	ctx := context.Background()

	lessonID := uuid.New()
	userLessonID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"lesson_id", "payload", "user_lesson_id"}).
		AddRow(lessonID, []byte(`{"level":"B1"}`), userLessonID)
	mock.ExpectQuery(regexp.QuoteMeta("WITH candidates AS")).
		WillReturnRows(rows)
	mock.ExpectCommit()

	tx, err := sqlxDB(repo).BeginTxx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	sel, found, err := repo.PickOrCreate(ctx, tx, models.LanguageEN, models.LanguageDE, models.LevelB1, userID, userLessonID)
	if err != nil {
		t.Fatalf("pick or create: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if sel.LessonID != lessonID || sel.UserLessonID != userLessonID {
		t.Errorf("selection = %+v", sel)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPickOrCreateReturnsNotFoundOnEmptyCatalog(t *testing.T) {
	repo, mock := newMockLessonRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WITH candidates AS")).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	tx, err := sqlxDB(repo).BeginTxx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	_, found, err := repo.PickOrCreate(ctx, tx, models.LanguageEN, models.LanguageDE, models.LevelB1, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("pick or create: %v", err)
	}
	if found {
		t.Error("found = true, want false")
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func sqlxDB(repo *LessonRepository) *sqlx.DB {
	return repo.DB()
}
