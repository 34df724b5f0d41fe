package flow

import (
	"context"
	"log"
	"strings"
	"sync"

	"idea-bot/api/internal/gen"
)

// Input — один ввод пользователя: либо токен кнопки, либо свободный текст.
type Input struct {
	Choice string
	Text   string
}

type StateKind int

const (
	// StateNone — активной сессии нет, ввод не к месту.
	StateNone StateKind = iota
	StateAskAudience
	StateAskProblem
	StateAskTech
	// StateRejected — ввод не того вида для текущего шага, шаг не сдвинут.
	StateRejected
	StateResult
)

// NextState — что показать пользователю после обработки хода.
type NextState struct {
	Kind    StateKind
	Step    Step // текущий шаг, для StateRejected
	Context gen.Context
	Outcome *gen.Outcome // только для StateResult
}

// Orchestrator ведёт диалог из трёх вопросов и по завершении зовёт
// генератор. Ходы одного пользователя сериализуются per-user замком,
// ходы разных пользователей независимы.
type Orchestrator struct {
	sessions SessionStore
	client   *gen.Client

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewOrchestrator(sessions SessionStore, client *gen.Client) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		client:   client,
		locks:    make(map[int64]*sync.Mutex),
	}
}

func (o *Orchestrator) userLock(userID int64) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	l, ok := o.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		o.locks[userID] = l
	}
	return l
}

// Start входит в творческий режим: существующая сессия отбрасывается,
// накопленный контекст не переносится.
func (o *Orchestrator) Start(ctx context.Context, userID int64) (NextState, error) {
	l := o.userLock(userID)
	l.Lock()
	defer l.Unlock()

	s := Session{UserID: userID, Step: StepAwaitingAudience}
	if err := o.sessions.Put(ctx, s); err != nil {
		return NextState{}, err
	}
	return NextState{Kind: StateAskAudience}, nil
}

// Cancel сбрасывает сессию (выход в главное меню, /cancel).
func (o *Orchestrator) Cancel(ctx context.Context, userID int64) error {
	l := o.userLock(userID)
	l.Lock()
	defer l.Unlock()
	return o.sessions.Delete(ctx, userID)
}

// Advance обрабатывает один ход диалога.
func (o *Orchestrator) Advance(ctx context.Context, userID int64, in Input) (NextState, error) {
	l := o.userLock(userID)
	l.Lock()
	defer l.Unlock()

	s, ok, err := o.sessions.Get(ctx, userID)
	if err != nil {
		return NextState{}, err
	}
	if !ok {
		return NextState{Kind: StateNone}, nil
	}

	rejected := NextState{Kind: StateRejected, Step: s.Step, Context: s.Context}

	switch s.Step {
	case StepAwaitingAudience:
		label, match := audienceLabels[in.Choice]
		if !match {
			return rejected, nil
		}
		s.Context.TargetAudience = label
		s.Step = StepAwaitingProblem
		if err := o.sessions.Put(ctx, s); err != nil {
			return NextState{}, err
		}
		return NextState{Kind: StateAskProblem, Context: s.Context}, nil

	case StepAwaitingProblem:
		if in.Choice != "" || strings.TrimSpace(in.Text) == "" {
			return rejected, nil
		}
		// Текст сохраняется дословно, без ограничения длины.
		s.Context.Problem = in.Text
		s.Step = StepAwaitingTech
		if err := o.sessions.Put(ctx, s); err != nil {
			return NextState{}, err
		}
		return NextState{Kind: StateAskTech, Context: s.Context}, nil

	case StepAwaitingTech:
		label, match := techLabels[in.Choice]
		if !match {
			return rejected, nil
		}
		s.Context.TechPreference = label
		s.Step = StepCompleted
		if err := o.sessions.Put(ctx, s); err != nil {
			return NextState{}, err
		}

		out := o.client.Generate(ctx, userID, s.Context)

		// Диалог окончен в любом исходе; новая попытка — с нуля.
		if err := o.sessions.Delete(ctx, userID); err != nil {
			log.Printf("flow: не удалось снять сессию user=%d: %v", userID, err)
		}
		return NextState{Kind: StateResult, Context: s.Context, Outcome: &out}, nil
	}

	// StepCompleted в хранилище не живёт: сессия снимается сразу после
	// выдачи результата.
	return NextState{Kind: StateNone}, nil
}
