package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"idea-bot/api/internal/flow"
	"idea-bot/api/internal/gen"
)

const questionAudienceText = `💡 *Генератор идей проектов*

Давай придумаем проект специально для тебя!

Я задам тебе 3 быстрых вопроса, чтобы понять твои интересы и цели.

*Вопрос 1 из 3:*
Для кого будет этот проект?`

const questionProblemText = `✅ Отлично!

*Вопрос 2 из 3:*
Расскажи, какую проблему хочешь решить или что хочешь создать?

💬 Напиши своими словами:
_Например: "Хочу сайт для книжного клуба" или "Нужна автоматизация отчетов"_`

const questionTechText = `✅ Понял!

*Вопрос 3 из 3:*
Какой тип проекта тебе интереснее?`

const loadingText = `⏳ *Обрабатываю твой запрос...*

Генерирую идеи специально для тебя. Это займет несколько секунд...

🤖 AI думает...`

const guidanceText = `💬 Пожалуйста, используй кнопки для выбора вариантов, или введи описание проблемы, когда бот попросит.`

// formatIdeas собирает итоговое сообщение со списком идей.
func formatIdeas(ideas []gen.Idea) string {
	var b strings.Builder
	b.WriteString("🎨 *Вот идеи для твоего проекта:*\n\n")

	for i, idea := range ideas {
		fmt.Fprintf(&b, "*💡 Идея %d: %s*\n", i+1, idea.Title)
		b.WriteString(idea.Description)
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "*Решает:* %s\n", idea.Problem)
		fmt.Fprintf(&b, "*Технологии:* %s\n", idea.Tech)
		b.WriteString("*Первые шаги:*\n")
		for j, step := range idea.Steps {
			fmt.Fprintf(&b, "%d. %s\n", j+1, step)
		}
		b.WriteString("\n---\n\n")
	}

	b.WriteString("✨ Понравилась идея? Можешь вернуться в главное меню и изучить основы!")
	return b.String()
}

// renderState превращает результат хода диалога в текст и клавиатуру.
func renderState(ns flow.NextState) (string, *tgbotapi.InlineKeyboardMarkup) {
	switch ns.Kind {
	case flow.StateAskAudience:
		return questionAudienceText, kb(makeAudienceKeyboard())
	case flow.StateAskProblem:
		return questionProblemText, kb(makeProblemNavKeyboard())
	case flow.StateAskTech:
		return questionTechText, kb(makeTechKeyboard())
	case flow.StateRejected:
		return guidanceText, nil
	case flow.StateResult:
		return renderOutcome(ns.Outcome)
	default:
		// Вне творческого режима: подсказываем, как войти.
		return "Нажми /start и выбери режим в меню.", nil
	}
}

func renderOutcome(out *gen.Outcome) (string, *tgbotapi.InlineKeyboardMarkup) {
	switch out.Kind {
	case gen.OutcomeSuccess:
		return formatIdeas(out.Ideas), kb(makeResultKeyboard())
	case gen.OutcomeRateLimited, gen.OutcomeNotConfigured:
		return out.Message, kb(makeNoRetryKeyboard())
	default:
		// Сеть, сервер, кривой ответ — повтор осмыслен.
		return out.Message, kb(makeRetryKeyboard())
	}
}

func kb(m tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup { return &m }
