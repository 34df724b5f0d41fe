// Package gen — генерация идей проектов: промпты, вызов LLM, разбор ответа.
package gen

import (
	"errors"
	"fmt"
	"time"
)

// Context — собранные за диалог ответы пользователя.
type Context struct {
	TargetAudience string
	Problem        string
	TechPreference string
}

// Idea — одна структурированная идея из ответа модели.
type Idea struct {
	Title       string
	Description string
	Problem     string
	Tech        string
	Steps       []string
}

// Valid: все поля заполнены и шагов минимум два.
// Пустое описание допустимо только при деградированном разборе,
// валидной такая идея не считается.
func (i Idea) Valid() bool {
	return i.Title != "" && i.Description != "" && i.Problem != "" &&
		i.Tech != "" && len(i.Steps) >= 2
}

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRateLimited
	OutcomeNotConfigured
	OutcomeNetworkError
	OutcomeUpstreamError
	OutcomeMalformedResponse
	OutcomeNoValidIdeas
)

// Outcome — терминальный результат одной попытки генерации.
type Outcome struct {
	Kind       OutcomeKind
	Ideas      []Idea        // только для OutcomeSuccess
	Message    string        // готовый текст для пользователя
	RetryAfter time.Duration // только для почасового OutcomeRateLimited
	Status     int           // HTTP-статус для OutcomeUpstreamError
}

// Ошибки движков, по которым клиент раскладывает Outcome.
var (
	ErrNotConfigured    = errors.New("llm credentials are not configured")
	ErrBadResponseShape = errors.New("completion response has no text")
)

// UpstreamStatusError — не-2xx ответ completion-эндпоинта.
type UpstreamStatusError struct {
	Status int
	Body   string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}
