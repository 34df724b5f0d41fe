package gen

import "fmt"

// SystemPrompt — ограничивающий системный промпт. Формат блоков «Идея N:»
// обязателен: на него опирается разбор ответа.
const SystemPrompt = `Ты - дружелюбный IT-наставник в библиотеке, помогающий новичкам создавать цифровые проекты.

ЗАДАЧА: Предложи 2-3 простые, реально осуществимые идеи проектов.

ОГРАНИЧЕНИЯ:
- Проекты должны быть завершены за 2-4 недели начинающим
- Используй только бесплатные и доступные технологии
- Объясняй без технического жаргона
- Фокус на практической пользе

ОБЯЗАТЕЛЬНЫЙ ФОРМАТ для каждой идеи:
**Идея [номер]: [Краткое название]**
[Описание в 2-3 предложениях, что это и зачем]

Решает: [Какую конкретную проблему]
Технологии: [Список из 2-4 инструментов]
Первые шаги:
1. [Конкретное действие]
2. [Конкретное действие]
3. [Конкретное действие]
`

// notSpecified подставляется вместо незаполненных полей контекста.
const notSpecified = "не указано"

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}

// BuildUserPrompt собирает пользовательский промпт из контекста диалога.
// Чистая функция: ни состояния, ни сети.
func BuildUserPrompt(c Context) string {
	return fmt.Sprintf(`КОНТЕКСТ:
Целевая аудитория: %s
Проблема или цель: %s
Технические предпочтения: %s

Предложи 2-3 подходящие идеи проектов.`,
		orNotSpecified(c.TargetAudience),
		orNotSpecified(c.Problem),
		orNotSpecified(c.TechPreference),
	)
}
