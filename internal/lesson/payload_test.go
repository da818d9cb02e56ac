package lesson

import (
	"encoding/json"
	"testing"

	"github.com/suleymanmyradov/lingua-gateway/pkg/llmgen"
)

func TestToJSONPayloadRoundTrips(t *testing.T) {
	l := &llmgen.Lesson{
		Level: "B1",
		Tasks: []llmgen.Task{
			{
				Type:             llmgen.TaskFillInTheBlank,
				Question:         "Ich ___ zur Schule.",
				Answer:           "gehe",
				Hint:             "present tense of gehen",
				Options:          []string{"gehe", "geht", "gehst"},
				ErrorExplanation: map[string]string{"geht": "wrong person"},
			},
		},
	}

	payload, err := toJSONPayload(l)
	if err != nil {
		t.Fatalf("toJSONPayload: %v", err)
	}

	var decoded llmgen.Lesson
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded.Level != "B1" {
		t.Errorf("level = %q, want B1", decoded.Level)
	}
	if len(decoded.Tasks) != 1 || decoded.Tasks[0].Answer != "gehe" {
		t.Errorf("tasks = %+v", decoded.Tasks)
	}
}
