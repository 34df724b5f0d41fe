// Package flow — пошаговый диалог сбора контекста для генерации идей.
package flow

import (
	"context"
	"sync"

	"idea-bot/api/internal/gen"
)

type Step int

const (
	StepAwaitingAudience Step = iota
	StepAwaitingProblem
	StepAwaitingTech
	StepCompleted
)

// Session — прогресс диалога одного пользователя. Шаг движется только
// вперёд; откат — это пересоздание сессии с нуля.
type Session struct {
	UserID  int64
	Step    Step
	Context gen.Context
}

// SessionStore — хранилище сессий по пользователю. Память по умолчанию,
// Postgres как альтернативный бэкенд (internal/store).
type SessionStore interface {
	Get(ctx context.Context, userID int64) (Session, bool, error)
	Put(ctx context.Context, s Session) error
	Delete(ctx context.Context, userID int64) error
}

type MemoryStore struct {
	m sync.Map // userID -> Session
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Get(_ context.Context, userID int64) (Session, bool, error) {
	v, ok := s.m.Load(userID)
	if !ok {
		return Session{}, false, nil
	}
	return v.(Session), true, nil
}

func (s *MemoryStore) Put(_ context.Context, sess Session) error {
	s.m.Store(sess.UserID, sess)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.m.Delete(userID)
	return nil
}

// Токены кнопок и соответствующие человекочитаемые значения контекста.
var audienceLabels = map[string]string{
	"target_self":     "Для себя (учеба/хобби)",
	"target_work":     "Для работы/организации",
	"target_business": "Для бизнеса/стартапа",
}

var techLabels = map[string]string{
	"tech_web":    "Веб-сайт",
	"tech_bot":    "Телеграм-бот",
	"tech_mobile": "Мобильное приложение",
	"tech_any":    "Не знаю, посоветуй",
}

// IsAudienceToken сообщает, относится ли токен кнопки к первому вопросу.
func IsAudienceToken(tok string) bool {
	_, ok := audienceLabels[tok]
	return ok
}

// IsTechToken сообщает, относится ли токен кнопки к третьему вопросу.
func IsTechToken(tok string) bool {
	_, ok := techLabels[tok]
	return ok
}
