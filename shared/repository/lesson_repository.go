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

// pickOrCreateQuery selects a random lesson for which the user has no
// assignment still cooling down (next_available set and not yet passed) and
// records the assignment, all in one round trip. An assignment whose
// next_available is null, as every freshly inserted one is, does not exclude
// its lesson. Returns no rows when the catalog has nothing left to offer,
// which the caller interprets as "fall back to generation".
const pickOrCreateQuery = `
WITH candidates AS (
	SELECT l.id, l.payload
	FROM lessons l
	WHERE l.studied_lang = $1 AND l.lesson_lang = $2 AND l.level = $3
	  AND NOT EXISTS (
	    SELECT 1 FROM user_lessons ul
	    WHERE ul.lesson_id = l.id AND ul.user_id = $4
	      AND ul.next_available IS NOT NULL AND ul.next_available >= now()
	  )
), counted AS (
	SELECT count(*)::bigint AS n FROM candidates
), picked AS (
	SELECT candidates.* FROM candidates, counted
	WHERE counted.n > 0
	OFFSET floor(random() * (SELECT n FROM counted))::bigint LIMIT 1
), inserted AS (
	INSERT INTO user_lessons (id, user_id, lesson_id, status, score, created_at, updated_at)
	SELECT $5, $4, picked.id, 'PENDING', 0, now(), now() FROM picked
	RETURNING id, lesson_id
)
SELECT picked.id AS lesson_id, picked.payload, inserted.id AS user_lesson_id
FROM picked JOIN inserted ON inserted.lesson_id = picked.id`

const insertGeneratedLessonQuery = `
	INSERT INTO lessons (id, studied_lang, lesson_lang, level, payload, created_at)
	VALUES (:id, :studied_lang, :lesson_lang, :level, :payload, :created_at)`

const insertUserLessonQuery = `
	INSERT INTO user_lessons (id, user_id, lesson_id, status, score, created_at, updated_at)
	VALUES (:id, :user_id, :lesson_id, :status, :score, :created_at, :updated_at)`

// Selection is the outcome of a pick-or-create call: a lesson payload and
// the id of the user_lessons row recording the assignment.
type Selection struct {
	LessonID     uuid.UUID          `db:"lesson_id"`
	Payload      models.JSONPayload `db:"payload"`
	UserLessonID uuid.UUID          `db:"user_lesson_id"`
}

// LessonRepository implements the atomic pick-or-create lesson selection.
type LessonRepository struct {
	*BaseRepository
}

func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{BaseRepository: NewBaseRepository(db)}
}

// PickOrCreate runs pickOrCreateQuery inside tx and reports whether the
// catalog had a candidate. A false result with a nil error means the caller
// must generate a lesson and call InsertGenerated.
func (r *LessonRepository) PickOrCreate(ctx context.Context, tx *sqlx.Tx, studiedLang, lessonLang models.Language, level models.Level, userID, userLessonID uuid.UUID) (*Selection, bool, error) {
	var sel Selection
	err := tx.GetContext(ctx, &sel, pickOrCreateQuery, studiedLang, lessonLang, level, userID, userLessonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		logx.WithContext(ctx).Errorf("pick or create lesson: %v", err)
		return nil, false, fmt.Errorf("pick or create lesson: %w", err)
	}
	return &sel, true, nil
}

// InsertGenerated persists a freshly-synthesized lesson and its assignment
// to the requesting user in the same transaction. Used on the LLM fallback
// path; the result is never written through the cache, since the payload
// was just minted and has no prior readers to keep consistent with.
func (r *LessonRepository) InsertGenerated(ctx context.Context, tx *sqlx.Tx, lesson *models.Lesson, userLesson *models.UserLesson) error {
	if _, err := tx.NamedExecContext(ctx, insertGeneratedLessonQuery, lesson); err != nil {
		logx.WithContext(ctx).Errorf("insert generated lesson: %v", err)
		return fmt.Errorf("insert generated lesson: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, insertUserLessonQuery, userLesson); err != nil {
		logx.WithContext(ctx).Errorf("insert user lesson: %v", err)
		return fmt.Errorf("insert user lesson: %w", err)
	}
	return nil
}

// Transaction exposes BaseRepository's transaction helper to the lesson
// service, which runs the pick and the fallback insert in separate
// transactions.
func (r *LessonRepository) Transaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	return r.BaseRepository.Transaction(ctx, fn)
}
