package gen

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"idea-bot/api/internal/limiter"
)

// Client связывает лимитер, промпты, движок и разбор в одну операцию
// Generate. Сам по себе состояния не держит.
type Client struct {
	limiter *limiter.RateLimiter
	engines *Manager
}

func NewClient(lim *limiter.RateLimiter, engines *Manager) *Client {
	return &Client{limiter: lim, engines: engines}
}

// Generate выполняет одну попытку генерации идей для пользователя.
// Квота резервируется до сетевого вызова и не возвращается при его
// неудаче: повторные сбои не должны раздувать расход на API.
func (c *Client) Generate(ctx context.Context, userID int64, gctx Context) Outcome {
	eng := c.engines.Get(userID)
	if eng == nil {
		return notConfiguredOutcome()
	}

	d := c.limiter.CheckAndReserve(userID)
	if !d.Allowed {
		switch d.Reason {
		case limiter.ReasonHourly:
			mins := int(d.RetryAfter.Minutes())
			return Outcome{
				Kind:       OutcomeRateLimited,
				RetryAfter: d.RetryAfter,
				Message:    fmt.Sprintf("⏰ Превышен лимит (%d запросов в час). Попробуй через %d мин.", d.Limit, mins),
			}
		default:
			return Outcome{
				Kind:    OutcomeRateLimited,
				Message: fmt.Sprintf("⏰ Превышен дневной лимит (%d запросов). Возвращайся завтра!", d.Limit),
			}
		}
	}

	reqID := uuid.NewString()
	log.Printf("gen %s: user=%d engine=%s model=%s", reqID, userID, eng.Name(), eng.GetModel())

	text, err := eng.Complete(ctx, SystemPrompt, BuildUserPrompt(gctx))
	if err != nil {
		return classifyEngineError(reqID, err)
	}

	ideas, err := ParseIdeas(text)
	switch {
	case err == nil:
	case errors.Is(err, ErrMalformed), errors.Is(err, ErrNoIdeas):
		log.Printf("gen %s: разбор не удался: %v", reqID, err)
		return Outcome{
			Kind:    OutcomeMalformedResponse,
			Message: "❌ AI вернул неожиданный формат. Попробуй переформулировать запрос.",
		}
	case errors.Is(err, ErrAllInvalid):
		log.Printf("gen %s: все идеи отброшены валидацией", reqID)
		return Outcome{
			Kind:    OutcomeNoValidIdeas,
			Message: "❌ Идеи не прошли валидацию. Попробуй другой запрос.",
		}
	default:
		log.Printf("gen %s: разбор: %v", reqID, err)
		return Outcome{
			Kind:    OutcomeMalformedResponse,
			Message: "❌ AI вернул неожиданный формат. Попробуй переформулировать запрос.",
		}
	}

	log.Printf("gen %s: получено идей: %d", reqID, len(ideas))
	return Outcome{Kind: OutcomeSuccess, Ideas: ideas}
}

func classifyEngineError(reqID string, err error) Outcome {
	var up *UpstreamStatusError
	switch {
	case errors.Is(err, ErrNotConfigured):
		return notConfiguredOutcome()
	case errors.As(err, &up):
		log.Printf("gen %s: upstream %d: %s", reqID, up.Status, up.Body)
		return Outcome{
			Kind:    OutcomeUpstreamError,
			Status:  up.Status,
			Message: "❌ Ошибка API. Попробуй позже.",
		}
	case errors.Is(err, ErrBadResponseShape):
		log.Printf("gen %s: пустой/кривой ответ completion", reqID)
		return Outcome{
			Kind:    OutcomeMalformedResponse,
			Message: "❌ Неожиданный формат ответа API",
		}
	default:
		// Транспортный сбой или таймаут. Ретраев нет: повтор — действие
		// пользователя.
		log.Printf("gen %s: сеть: %v", reqID, err)
		return Outcome{
			Kind:    OutcomeNetworkError,
			Message: "❌ Ошибка сети. Проверь подключение.",
		}
	}
}

func notConfiguredOutcome() Outcome {
	return Outcome{
		Kind: OutcomeNotConfigured,
		Message: `⚠️ Режим AI временно недоступен

Для работы генератора идей нужны API ключи Yandex GPT.

Как получить доступ:
1. Зарегистрируйся на cloud.yandex.ru
2. Создай API ключ для Yandex GPT
3. Добавь ключ в .env файл бота`,
	}
}
