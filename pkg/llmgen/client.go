// Package llmgen talks to the generative-language backend used to
// synthesize a lesson when the catalog has nothing left to offer a user.
package llmgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const generateEndpointFmt = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// systemInstruction pins the model to the ten-task schema Task/Lesson
// describe; it's sent verbatim on every request rather than built up from
// the Input, since the shape never changes, only the language pair and
// level.
const systemInstruction = `You are a language-lesson generator. Given a CEFR level, a source ` +
	`language the learner already knows, and a target language being studied, produce a lesson ` +
	`of exactly 10 tasks as JSON matching this schema: {"level": string, "tasks": [{"type": ` +
	`"fill_in_the_blank"|"rearrange_sentence"|"translate_sentence"|"choose_translation", ` +
	`"question": string, "answer": string, "hint": string, "options": [string] (only for ` +
	`fill_in_the_blank and choose_translation), "error_explanation": {wrong_answer: explanation}}]}. ` +
	`Respond with only the JSON object, no surrounding text.`

// harmCategories lists the four safety categories the generation request
// relaxes to BLOCK_NONE; the generated content is pedagogical exercises,
// not open-ended chat, so the default thresholds reject too much benign
// vocabulary.
var harmCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	CandidateCount  int     `json:"candidateCount"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	ResponseMIME    string  `json:"responseMimeType"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Role  string        `json:"role,omitempty"`
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction content          `json:"systemInstruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
	SafetySettings    []safetySetting  `json:"safetySettings"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Client generates lesson content through the Gemini API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient builds a Client over a shared pooled HTTP transport: modest
// per-host idle connections since generation calls are infrequent compared
// to the read-through cache traffic, but a 60s timeout distinct from (and
// longer than) the generic 30s outbound HTTP budget, since generation can
// take several seconds.
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
			},
		},
	}
}

// Generate produces a lesson for the given input. The result is never
// cached: it's already a novel, one-off artifact by the time it reaches
// the caller, which persists it directly to the catalog.
func (c *Client) Generate(ctx context.Context, input Input) (*Lesson, error) {
	prompt := fmt.Sprintf("level=%s source_language=%s target_language=%s",
		input.Level, input.SourceLanguage, input.TargetLanguage)

	settings := make([]safetySetting, len(harmCategories))
	for i, category := range harmCategories {
		settings[i] = safetySetting{Category: category, Threshold: "BLOCK_NONE"}
	}

	reqBody := generateRequest{
		SystemInstruction: content{Parts: []contentPart{{Text: systemInstruction}}},
		Contents:          []content{{Role: "user", Parts: []contentPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopP:            0.9,
			TopK:            128,
			CandidateCount:  1,
			MaxOutputTokens: 8192,
			ResponseMIME:    "application/json",
		},
		SafetySettings: settings,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("llmgen: encode request: %w", err)
	}

	url := fmt.Sprintf(generateEndpointFmt, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("llmgen: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("llmgen: generate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llmgen: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llmgen: generate returned status %d: %s", resp.StatusCode, body)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("llmgen: decode response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("llmgen: no candidates returned")
	}

	var lesson Lesson
	if err := json.Unmarshal([]byte(genResp.Candidates[0].Content.Parts[0].Text), &lesson); err != nil {
		return nil, fmt.Errorf("llmgen: decode lesson json: %w", err)
	}
	return &lesson, nil
}
