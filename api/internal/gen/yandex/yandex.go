// Package yandex — completion-движок поверх YandexGPT foundationModels API.
package yandex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"idea-bot/api/internal/gen"
)

const defaultURL = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"

type Engine struct {
	apiKey      string
	folderID    string
	model       string
	temperature float64
	maxTokens   int
	httpc       *http.Client

	// URL переопределяется в тестах.
	URL string
}

func New(apiKey, folderID, model string, temperature float64, maxTokens int, timeout time.Duration) *Engine {
	return &Engine{
		apiKey:      apiKey,
		folderID:    folderID,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpc:       &http.Client{Timeout: timeout},
		URL:         defaultURL,
	}
}

func (e *Engine) Name() string     { return "yandex" }
func (e *Engine) GetModel() string { return e.model }

type completionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type request struct {
	ModelURI          string            `json:"modelUri"`
	CompletionOptions completionOptions `json:"completionOptions"`
	Messages          []message         `json:"messages"`
}

type response struct {
	Result *struct {
		Alternatives []struct {
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
		} `json:"alternatives"`
	} `json:"result"`
}

// Complete выполняет один нестриминговый completion-вызов.
func (e *Engine) Complete(ctx context.Context, system, user string) (string, error) {
	if e.apiKey == "" || e.folderID == "" {
		return "", gen.ErrNotConfigured
	}

	reqBody := request{
		ModelURI: fmt.Sprintf("gpt://%s/%s", e.folderID, e.model),
		CompletionOptions: completionOptions{
			Stream:      false,
			Temperature: e.temperature,
			MaxTokens:   e.maxTokens,
		},
		Messages: []message{
			{Role: "system", Text: system},
			{Role: "user", Text: user},
		},
	}
	payload, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST", e.URL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+e.apiKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", &gen.UpstreamStatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(x))}
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", gen.ErrBadResponseShape, err)
	}
	if out.Result == nil || len(out.Result.Alternatives) == 0 {
		return "", gen.ErrBadResponseShape
	}
	text := out.Result.Alternatives[0].Message.Text
	if strings.TrimSpace(text) == "" {
		return "", gen.ErrBadResponseShape
	}
	return text, nil
}
