package gen

import (
	"context"
	"sync"
)

// Engine — один completion-вызов без серверной памяти диалога.
type Engine interface {
	Name() string
	GetModel() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// Manager выбирает движок по чату; по умолчанию — дефолтный.
// Дефолт может быть nil, если креды не настроены.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}
