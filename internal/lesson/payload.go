package lesson

import (
	"encoding/json"

	"github.com/suleymanmyradov/lingua-gateway/pkg/llmgen"
	"github.com/suleymanmyradov/lingua-gateway/shared/models"
)

func toJSONPayload(l *llmgen.Lesson) (models.JSONPayload, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return models.JSONPayload(data), nil
}
