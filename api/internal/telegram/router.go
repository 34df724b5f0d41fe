package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"idea-bot/api/internal/content"
	"idea-bot/api/internal/flow"
	"idea-bot/api/internal/gen"
)

type Router struct {
	Bot     *tgbotapi.BotAPI
	Flow    *flow.Orchestrator
	Engines *gen.Manager

	// Доступные движки для /engine; nil, если не настроен.
	Yandex gen.Engine
	Gemini gen.Engine
}

const helpText = `📚 *Справка по DigiLib Assistant*

*Основные команды:*
/start - Начать работу с ботом
/help - Показать эту справку
/cancel - Отменить текущее действие

*Режимы работы:*
📚 *Изучить основы* - Пошаговые гиды по 6 темам:
  • Cursor (редактор кода с AI)
  • GitHub (платформа для кода)
  • Git (контроль версий)
  • Связка Cursor + GitHub
  • Push кода на GitHub
  • Деплой на Railway

💡 *Придумать проект* - AI поможет:
  • Сгенерировать идеи проектов
  • Подобрать технологии
  • Составить план действий`

func mainMenuText(firstName string) string {
	name := firstName
	if name == "" {
		name = "друг"
	}
	return fmt.Sprintf(`👋 Привет, %s!

Я DigiLib Assistant - твой проводник в мир создания цифровых решений. 🚀

*Чем займемся сегодня?*
• Изучим основы работы с современными инструментами
• Придумаем идею для твоего проекта

Просто нажми на кнопку ниже!`, name)
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}
	if upd.Message.Text != "" {
		r.handleText(upd)
	}
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	ctx := context.Background()
	cid := upd.Message.Chat.ID
	uid := upd.Message.From.ID

	switch upd.Message.Command() {
	case "start":
		// /start сбрасывает любую текущую сессию.
		if err := r.Flow.Cancel(ctx, uid); err != nil {
			log.Printf("telegram: cancel user=%d: %v", uid, err)
		}
		r.sendWithKeyboard(cid, mainMenuText(upd.Message.From.FirstName), makeMainMenuKeyboard())
	case "help":
		r.send(cid, helpText)
	case "cancel":
		if err := r.Flow.Cancel(ctx, uid); err != nil {
			log.Printf("telegram: cancel user=%d: %v", uid, err)
		}
		r.sendWithKeyboard(cid, "❌ Действие отменено.\n\nВозвращаю тебя в главное меню.", makeMainMenuKeyboard())
	case "health":
		r.send(cid, "✅ OK")
	case "engine":
		r.handleEngineCommand(cid, uid, upd.Message.Text)
	default:
		r.send(cid, "Неизвестная команда. Нажми /start")
	}
}

// handleEngineCommand переключает completion-движок для пользователя.
//
//	/engine yandex
//	/engine gemini
func (r *Router) handleEngineCommand(chatID, userID int64, cmd string) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(cmd, "/engine")))
	if len(args) == 0 {
		cur := "не настроен"
		if e := r.Engines.Get(userID); e != nil {
			cur = fmt.Sprintf("%s (%s)", e.Name(), e.GetModel())
		}
		r.send(chatID, "Текущий движок: "+cur+"\nИспользование:\n/engine yandex\n/engine gemini")
		return
	}
	switch strings.ToLower(args[0]) {
	case "yandex":
		if r.Yandex == nil {
			r.send(chatID, "❌ YandexGPT не настроен.")
			return
		}
		r.Engines.Set(userID, r.Yandex)
		r.send(chatID, "✅ Движок: yandex ("+r.Yandex.GetModel()+")")
	case "gemini":
		if r.Gemini == nil {
			r.send(chatID, "❌ Gemini не настроен.")
			return
		}
		r.Engines.Set(userID, r.Gemini)
		r.send(chatID, "✅ Движок: gemini ("+r.Gemini.GetModel()+")")
	default:
		r.send(chatID, "Неизвестный движок. Доступны: yandex | gemini")
	}
}

// handleText — свободный текст: очередной ход диалога (ответ на вопрос 2).
func (r *Router) handleText(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	uid := upd.Message.From.ID

	ns, err := r.Flow.Advance(context.Background(), uid, flow.Input{Text: upd.Message.Text})
	if err != nil {
		log.Printf("telegram: advance user=%d: %v", uid, err)
		r.send(cid, "❌ Что-то пошло не так. Попробуй ещё раз.")
		return
	}
	text, markup := renderState(ns)
	if markup != nil {
		r.sendWithKeyboard(cid, text, *markup)
	} else {
		r.send(cid, text)
	}
}

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.From == nil {
		return
	}
	ctx := context.Background()
	cid := cb.Message.Chat.ID
	uid := cb.From.ID
	msgID := cb.Message.MessageID
	data := cb.Data
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")) // ack

	switch {
	case data == "mode_creative":
		ns, err := r.Flow.Start(ctx, uid)
		if err != nil {
			log.Printf("telegram: start user=%d: %v", uid, err)
			r.send(cid, "❌ Что-то пошло не так. Попробуй ещё раз.")
			return
		}
		r.editState(cid, msgID, ns)

	case flow.IsAudienceToken(data):
		r.advanceByChoice(ctx, cid, uid, msgID, data)

	case flow.IsTechToken(data):
		// Последний ответ: показываем ожидание, генерация занимает секунды.
		r.edit(cid, msgID, loadingText, nil)
		r.advanceByChoice(ctx, cid, uid, msgID, data)

	case data == "mode_educational":
		r.edit(cid, msgID, "📚 *Изучить основы*\n\nВыбери тему:", kb(makeTopicsKeyboard()))

	case strings.HasPrefix(data, "topic_"):
		if t, ok := content.Find(strings.TrimPrefix(data, "topic_")); ok {
			r.edit(cid, msgID, t.Body, kb(makeTopicKeyboard()))
		} else {
			r.edit(cid, msgID, "Тема не найдена.", kb(makeTopicsKeyboard()))
		}

	case data == "back_to_topics":
		r.edit(cid, msgID, "📚 *Изучить основы*\n\nВыбери тему:", kb(makeTopicsKeyboard()))

	case data == "back_to_main":
		if err := r.Flow.Cancel(ctx, uid); err != nil {
			log.Printf("telegram: cancel user=%d: %v", uid, err)
		}
		r.edit(cid, msgID, mainMenuText(cb.From.FirstName), kb(makeMainMenuKeyboard()))

	case data == "help":
		r.send(cid, helpText)
	}
}

func (r *Router) advanceByChoice(ctx context.Context, chatID, userID int64, msgID int, token string) {
	ns, err := r.Flow.Advance(ctx, userID, flow.Input{Choice: token})
	if err != nil {
		log.Printf("telegram: advance user=%d: %v", userID, err)
		r.send(chatID, "❌ Что-то пошло не так. Попробуй ещё раз.")
		return
	}
	// Отказ по нажатой кнопке (устаревшая клавиатура): не затираем вопрос.
	if ns.Kind == flow.StateRejected || ns.Kind == flow.StateNone {
		text, _ := renderState(ns)
		r.send(chatID, text)
		return
	}
	r.editState(chatID, msgID, ns)
}

func (r *Router) editState(chatID int64, msgID int, ns flow.NextState) {
	text, markup := renderState(ns)
	r.edit(chatID, msgID, text, markup)
}

// send/edit всегда шлют Markdown и укорачивают слишком длинный текст:
// лимит Telegram — 4096 символов на сообщение.
func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, truncate(text))
	msg.ParseMode = "Markdown"
	if _, err := r.Bot.Send(msg); err != nil {
		log.Printf("telegram: send chat=%d: %v", chatID, err)
	}
}

func (r *Router) sendWithKeyboard(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, truncate(text))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = markup
	if _, err := r.Bot.Send(msg); err != nil {
		log.Printf("telegram: send chat=%d: %v", chatID, err)
	}
}

func (r *Router) edit(chatID int64, msgID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	var c tgbotapi.Chattable
	if markup != nil {
		e := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, truncate(text), *markup)
		e.ParseMode = "Markdown"
		c = e
	} else {
		e := tgbotapi.NewEditMessageText(chatID, msgID, truncate(text))
		e.ParseMode = "Markdown"
		c = e
	}
	if _, err := r.Bot.Send(c); err != nil {
		log.Printf("telegram: edit chat=%d: %v", chatID, err)
	}
}

func truncate(s string) string {
	if len(s) <= 3900 {
		return s
	}
	cut := 3900
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
