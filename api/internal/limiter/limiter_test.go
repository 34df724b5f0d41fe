package limiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHourlyQuota(t *testing.T) {
	l := New(2, 50)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.CheckAndReserve(1).Allowed)
	assert.True(t, l.CheckAndReserve(1).Allowed)

	d := l.CheckAndReserve(1)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonHourly, d.Reason)
	assert.Equal(t, 2, d.Limit)
	// Обе метки поставлены прямо сейчас: ждать почти полный час.
	assert.Equal(t, 60*time.Minute, d.RetryAfter)

	// Другой пользователь не задет.
	assert.True(t, l.CheckAndReserve(2).Allowed)

	// Отказ ничего не записал: после выхода окна снова можно.
	now = now.Add(61 * time.Minute)
	assert.True(t, l.CheckAndReserve(1).Allowed)
}

func TestRetryAfterRoundsUp(t *testing.T) {
	l := New(1, 50)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.CheckAndReserve(7).Allowed)

	now = now.Add(12*time.Minute + 30*time.Second)
	d := l.CheckAndReserve(7)
	assert.False(t, d.Allowed)
	// Метка выйдет из окна через 47м30с — округляем до 48 минут.
	assert.Equal(t, 48*time.Minute, d.RetryAfter)
}

func TestDailyQuota(t *testing.T) {
	l := New(100, 3)
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, l.CheckAndReserve(5).Allowed)
		now = now.Add(2 * time.Hour)
	}

	d := l.CheckAndReserve(5)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonDaily, d.Reason)
	assert.Equal(t, 3, d.Limit)

	// Через сутки от первой метки слот освобождается.
	now = time.Date(2025, 3, 2, 0, 0, 1, 0, time.UTC)
	assert.True(t, l.CheckAndReserve(5).Allowed)
}

func TestConcurrentReserveNeverOverbooks(t *testing.T) {
	const quota = 10
	l := New(quota, quota)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.CheckAndReserve(42).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, quota, allowed)
}
