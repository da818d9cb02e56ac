// Package models holds the rows the core queries touch: users, lessons and
// the per-user assignment of a lesson.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BaseModel carries the fields every table has.
type BaseModel struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Role is a user's privilege level.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a persisted identity, reconciled on every authenticated request
// against the caller-asserted fields.
type User struct {
	BaseModel
	ExternalID string `db:"external_id" json:"external_id"`
	FirstName  string `db:"first_name" json:"first_name"`
	LastName   string `db:"last_name" json:"last_name"`
	Username   string `db:"username" json:"username"`
	Role       Role   `db:"role" json:"role"`
	PhotoURL   string `db:"photo_url" json:"photo_url"`
	Visible    bool   `db:"visible" json:"visible"`
	Language   string `db:"language" json:"language"`
	CanWriteToPM bool `db:"can_write_to_pm" json:"can_write_to_pm"`
}

// AssertedUser is the identity a request claims to be, decoded from the
// init-data payload's "user" field. It is compared field-by-field against
// the stored User by the sync step.
type AssertedUser struct {
	ExternalID   string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
	PhotoURL     string `json:"photo_url"`
	CanWriteToPM bool   `json:"allows_write_to_pm"`
}

// UnmarshalJSON accepts "id" as a JSON number (the init-data form) or as a
// numeric string, and stores its decimal text in ExternalID.
func (a *AssertedUser) UnmarshalJSON(data []byte) error {
	type plain AssertedUser
	var raw struct {
		plain
		ID json.Number `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = AssertedUser(raw.plain)
	a.ExternalID = raw.ID.String()
	return nil
}

// Level is a CEFR proficiency level.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// ParseLevel accepts either case and normalizes to the canonical
// upper-case form.
func ParseLevel(s string) (Level, error) {
	lvl := Level(strings.ToUpper(s))
	switch lvl {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return lvl, nil
	default:
		return "", fmt.Errorf("models: unknown level %q", s)
	}
}

// Language is one of the 15 ISO codes the catalog partitions lessons by.
// Lowercase aliases are accepted on input and normalized to upper case,
// mirroring the original implementation's serde aliasing.
type Language string

const (
	LanguageEN Language = "EN"
	LanguageES Language = "ES"
	LanguageZH Language = "ZH"
	LanguageAR Language = "AR"
	LanguagePT Language = "PT"
	LanguageRU Language = "RU"
	LanguageJP Language = "JP"
	LanguageDE Language = "DE"
	LanguageKO Language = "KO"
	LanguageFR Language = "FR"
	LanguageTR Language = "TR"
	LanguageIT Language = "IT"
	LanguageUK Language = "UK"
	LanguagePL Language = "PL"
	LanguageCZ Language = "CZ"
)

var validLanguages = map[Language]struct{}{
	LanguageEN: {}, LanguageES: {}, LanguageZH: {}, LanguageAR: {}, LanguagePT: {},
	LanguageRU: {}, LanguageJP: {}, LanguageDE: {}, LanguageKO: {}, LanguageFR: {},
	LanguageTR: {}, LanguageIT: {}, LanguageUK: {}, LanguagePL: {}, LanguageCZ: {},
}

// ParseLanguage accepts either case, per the wire-visible aliasing in spec.
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToUpper(s))
	if _, ok := validLanguages[lang]; !ok {
		return "", fmt.Errorf("models: unknown language %q", s)
	}
	return lang, nil
}

// UnmarshalText lets Level bind directly from query parameters, accepting
// either case the way the original implementation's deserializer did.
func (l *Level) UnmarshalText(text []byte) error {
	lvl, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l), nil
}

// UnmarshalText lets Language bind directly from query parameters, with
// the same case-insensitive aliasing ParseLanguage applies.
func (lang *Language) UnmarshalText(text []byte) error {
	parsed, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*lang = parsed
	return nil
}

func (lang Language) MarshalText() ([]byte, error) {
	return []byte(lang), nil
}

// JSONPayload is an opaque JSON blob: the core never inspects it beyond
// passing it through to the client and, on the fallback path, persisting
// whatever the LLM returned.
type JSONPayload json.RawMessage

func (p *JSONPayload) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		cp := make([]byte, len(v))
		copy(cp, v)
		*p = JSONPayload(cp)
		return nil
	case string:
		*p = JSONPayload(v)
		return nil
	default:
		return fmt.Errorf("models: cannot scan %T into JSONPayload", value)
	}
}

func (p JSONPayload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	return []byte(p), nil
}

func (p JSONPayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

func (p *JSONPayload) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

// Lesson is a unit of study content. (studiedLang, lessonLang, level)
// partitions the catalog.
type Lesson struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	StudiedLang  Language    `db:"studied_lang" json:"studied_language"`
	LessonLang   Language    `db:"lesson_lang" json:"lesson_language"`
	Level        Level       `db:"level" json:"level"`
	Payload      JSONPayload `db:"payload" json:"payload"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// UserLessonStatus is the lifecycle state of an assignment.
type UserLessonStatus string

const (
	UserLessonPending   UserLessonStatus = "PENDING"
	UserLessonCompleted UserLessonStatus = "COMPLETED"
)

// UserLesson records that a lesson was assigned to a user. Exactly one row
// is inserted per selection event.
type UserLesson struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	UserID        uuid.UUID        `db:"user_id" json:"user_id"`
	LessonID      uuid.UUID        `db:"lesson_id" json:"lesson_id"`
	Status        UserLessonStatus `db:"status" json:"status"`
	Score         int              `db:"score" json:"score"`
	NextAvailable *time.Time       `db:"next_available" json:"next_available"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}
