// Package lesson implements the atomic pick-or-create selection: look for
// an unseen lesson in the catalog, and fall back to generating one through
// the LLM adapter when the catalog has nothing left for the requesting
// user at that (studiedLang, lessonLang, level) partition.
package lesson

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/suleymanmyradov/lingua-gateway/pkg/llmgen"
	"github.com/suleymanmyradov/lingua-gateway/shared/models"
	"github.com/suleymanmyradov/lingua-gateway/shared/repository"
)

// Result is what a selection returns to the caller: the lesson content and
// the id of the assignment row tracking the user's progress on it.
type Result struct {
	LessonID     uuid.UUID
	UserLessonID uuid.UUID
	Payload      models.JSONPayload
}

// Generator produces a new lesson when the catalog is exhausted.
type Generator interface {
	Generate(ctx context.Context, input llmgen.Input) (*llmgen.Lesson, error)
}

// Service drives the pick-or-create core.
type Service struct {
	repo      *repository.LessonRepository
	generator Generator
}

func NewService(repo *repository.LessonRepository, generator Generator) *Service {
	return &Service{repo: repo, generator: generator}
}

// Select returns a lesson for userID at the given partition, picking an
// unseen catalog entry when one exists and generating a fresh one
// otherwise. Each attempt runs in its own transaction: the pick attempt
// first, and if the catalog is dry, a second transaction that inserts the
// generated lesson and its assignment together.
func (s *Service) Select(ctx context.Context, userID uuid.UUID, studiedLang, lessonLang models.Language, level models.Level) (*Result, error) {
	userLessonID := uuid.New()

	var result *Result
	err := s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		sel, found, err := s.repo.PickOrCreate(ctx, tx, studiedLang, lessonLang, level, userID, userLessonID)
		if err != nil {
			return err
		}
		if found {
			result = &Result{LessonID: sel.LessonID, UserLessonID: sel.UserLessonID, Payload: sel.Payload}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result != nil {
		return result, nil
	}

	return s.generateAndAssign(ctx, userID, studiedLang, lessonLang, level)
}

func (s *Service) generateAndAssign(ctx context.Context, userID uuid.UUID, studiedLang, lessonLang models.Language, level models.Level) (*Result, error) {
	generated, err := s.generator.Generate(ctx, llmgen.Input{
		Level:          string(level),
		SourceLanguage: string(lessonLang),
		TargetLanguage: string(studiedLang),
	})
	if err != nil {
		return nil, fmt.Errorf("lesson: generate fallback: %w", err)
	}

	payload, err := toJSONPayload(generated)
	if err != nil {
		return nil, fmt.Errorf("lesson: encode generated payload: %w", err)
	}

	lessonID := uuid.New()
	userLessonID := uuid.New()
	now := time.Now()

	newLesson := &models.Lesson{
		ID:          lessonID,
		StudiedLang: studiedLang,
		LessonLang:  lessonLang,
		Level:       level,
		Payload:     payload,
		CreatedAt:   now,
	}
	assignment := &models.UserLesson{
		ID:        userLessonID,
		UserID:    userID,
		LessonID:  lessonID,
		Status:    models.UserLessonPending,
		Score:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		return s.repo.InsertGenerated(ctx, tx, newLesson, assignment)
	})
	if err != nil {
		return nil, err
	}

	return &Result{LessonID: lessonID, UserLessonID: userLessonID, Payload: payload}, nil
}
