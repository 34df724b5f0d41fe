package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"idea-bot/api/internal/flow"
	"idea-bot/api/internal/gen"
	"idea-bot/api/internal/limiter"
)

// stubEngine отдаёт заранее заданный ответ и запоминает контекст промпта.
type stubEngine struct {
	text string
	err  error

	lastUser string
	calls    int
}

func (s *stubEngine) Name() string     { return "stub" }
func (s *stubEngine) GetModel() string { return "stub-model" }

func (s *stubEngine) Complete(_ context.Context, _, user string) (string, error) {
	s.calls++
	s.lastUser = user
	return s.text, s.err
}

const stubCompletion = `**Идея 1: Сайт книжного клуба**
Сайт с анонсами и расписанием.

Решает: анонсы теряются
Технологии: Tilda
Первые шаги:
1. Раз
2. Два`

func newOrchestrator(eng gen.Engine) (*flow.Orchestrator, *flow.MemoryStore) {
	sessions := flow.NewMemoryStore()
	client := gen.NewClient(limiter.New(10, 50), gen.NewManager(eng))
	return flow.NewOrchestrator(sessions, client), sessions
}

func TestFullWalkthrough(t *testing.T) {
	eng := &stubEngine{text: stubCompletion}
	o, sessions := newOrchestrator(eng)
	ctx := context.Background()

	ns, err := o.Start(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, flow.StateAskAudience, ns.Kind)

	ns, err = o.Advance(ctx, 1, flow.Input{Choice: "target_self"})
	assert.NoError(t, err)
	assert.Equal(t, flow.StateAskProblem, ns.Kind)
	assert.Equal(t, "Для себя (учеба/хобби)", ns.Context.TargetAudience)

	ns, err = o.Advance(ctx, 1, flow.Input{Text: "Хочу сайт для книжного клуба"})
	assert.NoError(t, err)
	assert.Equal(t, flow.StateAskTech, ns.Kind)
	assert.Equal(t, "Хочу сайт для книжного клуба", ns.Context.Problem)

	ns, err = o.Advance(ctx, 1, flow.Input{Choice: "tech_web"})
	assert.NoError(t, err)
	assert.Equal(t, flow.StateResult, ns.Kind)
	assert.Equal(t, "Веб-сайт", ns.Context.TechPreference)
	assert.NotNil(t, ns.Outcome)
	assert.Equal(t, gen.OutcomeSuccess, ns.Outcome.Kind)
	assert.Len(t, ns.Outcome.Ideas, 1)

	// Весь контекст дошёл до промпта.
	assert.Contains(t, eng.lastUser, "Для себя (учеба/хобби)")
	assert.Contains(t, eng.lastUser, "Хочу сайт для книжного клуба")
	assert.Contains(t, eng.lastUser, "Веб-сайт")

	// Сессия снята после выдачи результата.
	_, ok, err := sessions.Get(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestWrongKindInputLeavesStepUnchanged(t *testing.T) {
	eng := &stubEngine{text: stubCompletion}
	o, sessions := newOrchestrator(eng)
	ctx := context.Background()

	_, err := o.Start(ctx, 1)
	assert.NoError(t, err)

	// Текст там, где ждём кнопку.
	ns, err := o.Advance(ctx, 1, flow.Input{Text: "просто текст"})
	assert.NoError(t, err)
	assert.Equal(t, flow.StateRejected, ns.Kind)
	assert.Equal(t, flow.StepAwaitingAudience, ns.Step)

	_, err = o.Advance(ctx, 1, flow.Input{Choice: "target_work"})
	assert.NoError(t, err)

	// Кнопка там, где ждём текст.
	ns, err = o.Advance(ctx, 1, flow.Input{Choice: "tech_web"})
	assert.NoError(t, err)
	assert.Equal(t, flow.StateRejected, ns.Kind)
	assert.Equal(t, flow.StepAwaitingProblem, ns.Step)

	s, ok, _ := sessions.Get(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, flow.StepAwaitingProblem, s.Step)
	assert.Zero(t, eng.calls)
}

func TestUnknownChoiceTokenRejected(t *testing.T) {
	o, _ := newOrchestrator(&stubEngine{text: stubCompletion})
	ctx := context.Background()

	_, err := o.Start(ctx, 1)
	assert.NoError(t, err)

	ns, err := o.Advance(ctx, 1, flow.Input{Choice: "target_unknown"})
	assert.NoError(t, err)
	assert.Equal(t, flow.StateRejected, ns.Kind)
}

func TestRestartDiscardsContext(t *testing.T) {
	o, sessions := newOrchestrator(&stubEngine{text: stubCompletion})
	ctx := context.Background()

	_, err := o.Start(ctx, 1)
	assert.NoError(t, err)
	_, err = o.Advance(ctx, 1, flow.Input{Choice: "target_business"})
	assert.NoError(t, err)

	// Повторный вход — всё с нуля, без переноса контекста.
	ns, err := o.Start(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, flow.StateAskAudience, ns.Kind)

	s, ok, _ := sessions.Get(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, flow.StepAwaitingAudience, s.Step)
	assert.Empty(t, s.Context.TargetAudience)
}

func TestCancelRemovesSession(t *testing.T) {
	o, sessions := newOrchestrator(&stubEngine{text: stubCompletion})
	ctx := context.Background()

	_, err := o.Start(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, o.Cancel(ctx, 1))

	_, ok, _ := sessions.Get(ctx, 1)
	assert.False(t, ok)

	ns, err := o.Advance(ctx, 1, flow.Input{Choice: "target_self"})
	assert.NoError(t, err)
	assert.Equal(t, flow.StateNone, ns.Kind)
}

func TestFailedGenerationEndsDialogue(t *testing.T) {
	eng := &stubEngine{err: errors.New("connection refused")}
	o, sessions := newOrchestrator(eng)
	ctx := context.Background()

	_, err := o.Start(ctx, 1)
	assert.NoError(t, err)
	_, err = o.Advance(ctx, 1, flow.Input{Choice: "target_self"})
	assert.NoError(t, err)
	_, err = o.Advance(ctx, 1, flow.Input{Text: "что-нибудь"})
	assert.NoError(t, err)

	ns, err := o.Advance(ctx, 1, flow.Input{Choice: "tech_any"})
	assert.NoError(t, err)
	assert.Equal(t, flow.StateResult, ns.Kind)
	assert.Equal(t, gen.OutcomeNetworkError, ns.Outcome.Kind)

	// Терминальная ошибка тоже завершает диалог.
	_, ok, _ := sessions.Get(ctx, 1)
	assert.False(t, ok)
}

func TestSessionsIndependentPerUser(t *testing.T) {
	o, _ := newOrchestrator(&stubEngine{text: stubCompletion})
	ctx := context.Background()

	_, err := o.Start(ctx, 1)
	assert.NoError(t, err)
	_, err = o.Start(ctx, 2)
	assert.NoError(t, err)

	_, err = o.Advance(ctx, 1, flow.Input{Choice: "target_self"})
	assert.NoError(t, err)

	// Пользователь 2 всё ещё на первом вопросе.
	ns, err := o.Advance(ctx, 2, flow.Input{Choice: "target_work"})
	assert.NoError(t, err)
	assert.Equal(t, flow.StateAskProblem, ns.Kind)
	assert.Equal(t, "Для работы/организации", ns.Context.TargetAudience)
}
