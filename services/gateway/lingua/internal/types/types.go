// Code scaffolded by goctl. Safe to edit.
package types

import (
	"encoding/json"

	"github.com/suleymanmyradov/lingua-gateway/shared/models"
)

type HealthResponse struct {
	Status string `json:"status"`
}

type LoginResponse struct {
	URL string `json:"url"`
}

type CallbackRequest struct {
	Code  string `form:"code"`
	State string `form:"state"`
}

type CallbackResponse struct {
	JWT string `json:"jwt"`
}

type UserResponse struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	PhotoURL   string `json:"photo_url"`
	Language   string `json:"language"`
}

type GetUserByIDRequest struct {
	ID string `path:"id"`
}

// LessonQueryRequest binds the wire-level source/target language pair: the
// source language is the one the learner already knows, the target is the
// one being studied. These map onto the lesson partition's lessonLang and
// studiedLang respectively.
type LessonQueryRequest struct {
	StudiedLanguage models.Language `form:"target_language"`
	LessonLanguage  models.Language `form:"source_language"`
	Level           models.Level    `form:"level"`
}

type LessonResponse struct {
	LessonID string          `json:"lesson_id"`
	Lesson   json.RawMessage `json:"lesson"`
}
