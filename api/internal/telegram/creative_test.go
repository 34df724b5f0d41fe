package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"idea-bot/api/internal/flow"
	"idea-bot/api/internal/gen"
)

func TestFormatIdeas(t *testing.T) {
	msg := formatIdeas([]gen.Idea{
		{
			Title:       "Сайт книжного клуба",
			Description: "Сайт с анонсами.",
			Problem:     "анонсы теряются",
			Tech:        "Tilda",
			Steps:       []string{"Собери разделы", "Сверстай страницу"},
		},
		{
			Title:       "Бот-напоминалка",
			Description: "Бот шлёт напоминания.",
			Problem:     "люди забывают",
			Tech:        "Bot API",
			Steps:       []string{"Создай бота", "Напиши сценарий"},
		},
	})

	assert.Contains(t, msg, "*💡 Идея 1: Сайт книжного клуба*")
	assert.Contains(t, msg, "*💡 Идея 2: Бот-напоминалка*")
	assert.Contains(t, msg, "*Решает:* анонсы теряются")
	assert.Contains(t, msg, "*Технологии:* Tilda")
	assert.Contains(t, msg, "1. Собери разделы")
	assert.Contains(t, msg, "2. Сверстай страницу")
}

func TestRenderStateQuestions(t *testing.T) {
	text, markup := renderState(flow.NextState{Kind: flow.StateAskAudience})
	assert.Contains(t, text, "Вопрос 1 из 3")
	assert.NotNil(t, markup)

	text, markup = renderState(flow.NextState{Kind: flow.StateAskProblem})
	assert.Contains(t, text, "Вопрос 2 из 3")
	assert.NotNil(t, markup)

	text, markup = renderState(flow.NextState{Kind: flow.StateAskTech})
	assert.Contains(t, text, "Вопрос 3 из 3")
	assert.NotNil(t, markup)

	text, markup = renderState(flow.NextState{Kind: flow.StateRejected})
	assert.Contains(t, text, "используй кнопки")
	assert.Nil(t, markup)
}

func TestRenderOutcomeKeyboards(t *testing.T) {
	// Сбои сети/сервера предлагают повтор.
	_, markup := renderState(flow.NextState{
		Kind:    flow.StateResult,
		Outcome: &gen.Outcome{Kind: gen.OutcomeNetworkError, Message: "❌ Ошибка сети."},
	})
	assert.Equal(t, "mode_creative", *markup.InlineKeyboard[0][0].CallbackData)

	// Лимит — повтора нет, только меню.
	_, markup = renderState(flow.NextState{
		Kind:    flow.StateResult,
		Outcome: &gen.Outcome{Kind: gen.OutcomeRateLimited, Message: "⏰ Лимит"},
	})
	assert.Equal(t, "mode_educational", *markup.InlineKeyboard[0][0].CallbackData)
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	long := ""
	for i := 0; i < 2500; i++ {
		long += "яю"
	}
	out := truncate(long)
	assert.LessOrEqual(t, len(out), 3904)
	assert.True(t, len(out) < len(long))
	for _, r := range out {
		assert.NotEqual(t, '�', r)
	}
}
