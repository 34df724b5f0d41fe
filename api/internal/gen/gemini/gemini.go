// Package gemini — альтернативный completion-движок через официальный SDK.
package gemini

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"idea-bot/api/internal/gen"
)

type Engine struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int32
}

func New(apiKey, model string, temperature float32, maxTokens int32) *Engine {
	return &Engine{APIKey: apiKey, Model: model, Temperature: temperature, MaxTokens: maxTokens}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Complete(ctx context.Context, system, user string) (string, error) {
	if e.APIKey == "" {
		return "", gen.ErrNotConfigured
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(strings.TrimSpace(e.Model))
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(e.Temperature),
		MaxOutputTokens: ptrInt32(e.MaxTokens),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", err
	}
	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", gen.ErrBadResponseShape
	}
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
