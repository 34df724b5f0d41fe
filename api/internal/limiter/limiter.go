// Package limiter реализует скользящие почасовой и суточный лимиты
// запросов к LLM на пользователя.
package limiter

import (
	"sync"
	"time"
)

type Reason int

const (
	ReasonNone Reason = iota
	ReasonHourly
	ReasonDaily
)

// Decision — результат атомарной проверки-с-резервированием.
type Decision struct {
	Allowed    bool
	Reason     Reason
	Limit      int           // сработавший лимит (для текста ошибки)
	RetryAfter time.Duration // только для ReasonHourly, округлено вверх до минуты
}

type userWindow struct {
	mu     sync.Mutex
	stamps []time.Time // по возрастанию, не старше суток
}

// RateLimiter хранит метки запросов по каждому пользователю.
// Проверка и запись метки выполняются под замком записи пользователя,
// так что два конкурентных вызова не займут один слот дважды.
// Замок общий только на доступ к таблице, не на проверку.
type RateLimiter struct {
	perHour int
	perDay  int

	mu    sync.Mutex
	users map[int64]*userWindow

	now func() time.Time
}

func New(perHour, perDay int) *RateLimiter {
	return &RateLimiter{
		perHour: perHour,
		perDay:  perDay,
		users:   make(map[int64]*userWindow),
		now:     time.Now,
	}
}

func (l *RateLimiter) PerHour() int { return l.perHour }
func (l *RateLimiter) PerDay() int  { return l.perDay }

func (l *RateLimiter) window(userID int64) *userWindow {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.users[userID]
	if !ok {
		w = &userWindow{}
		l.users[userID] = w
	}
	return w
}

// CheckAndReserve проверяет квоты и, если разрешено, сразу записывает метку.
// При отказе состояние не меняется.
func (l *RateLimiter) CheckAndReserve(userID int64) Decision {
	w := l.window(userID)

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	dayAgo := now.Add(-24 * time.Hour)
	hourAgo := now.Add(-time.Hour)

	// Чистим всё старше суток.
	kept := w.stamps[:0]
	for _, ts := range w.stamps {
		if ts.After(dayAgo) {
			kept = append(kept, ts)
		}
	}
	w.stamps = kept

	var inHour []time.Time
	for _, ts := range w.stamps {
		if ts.After(hourAgo) {
			inHour = append(inHour, ts)
		}
	}
	if len(inHour) >= l.perHour {
		// Ждать, пока старейшая метка часа не выйдет из окна.
		wait := inHour[0].Sub(hourAgo)
		mins := int(wait / time.Minute)
		if wait%time.Minute != 0 || mins == 0 {
			mins++
		}
		return Decision{
			Reason:     ReasonHourly,
			Limit:      l.perHour,
			RetryAfter: time.Duration(mins) * time.Minute,
		}
	}

	if len(w.stamps) >= l.perDay {
		return Decision{Reason: ReasonDaily, Limit: l.perDay}
	}

	w.stamps = append(w.stamps, now)
	return Decision{Allowed: true}
}
