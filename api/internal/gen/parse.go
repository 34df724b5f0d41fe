package gen

import (
	"errors"
	"log"
	"strings"
)

// Маркеры секций внутри блока идеи (задаются системным промптом).
const (
	markSolves = "Решает:"
	markTech   = "Технологии:"
	markSteps  = "Первые шаги:"
)

var (
	// ErrMalformed — в тексте нет ни одного маркера «Идея N:».
	ErrMalformed = errors.New("ответ не содержит блоков идей")
	// ErrNoIdeas — маркеры есть, но ни один блок не удалось извлечь.
	ErrNoIdeas = errors.New("не удалось извлечь ни одной идеи")
	// ErrAllInvalid — блоки извлечены, но ни один не прошёл валидацию.
	ErrAllInvalid = errors.New("ни одна идея не прошла валидацию")
)

// ParseIdeas разбирает сырой ответ модели в список валидных идей.
// Разбор терпим к типичному разбросу LLM-вывода: непоследовательный
// markdown вокруг маркеров, оборванная последняя секция, лишние пустые
// строки. Чистая функция, повторный вызов даёт тот же результат.
func ParseIdeas(raw string) ([]Idea, error) {
	type segment struct {
		lines []string
	}

	var (
		segs []*segment
		cur  *segment
	)
	for _, ln := range strings.Split(raw, "\n") {
		if rest, ok := ideaMarkerRest(ln); ok {
			cur = &segment{lines: []string{rest}}
			segs = append(segs, cur)
			continue
		}
		// Текст до первого маркера отбрасывается.
		if cur != nil {
			cur.lines = append(cur.lines, ln)
		}
	}
	if len(segs) == 0 {
		return nil, ErrMalformed
	}

	var (
		ideas   []Idea
		skipped int
		invalid int
	)
	for n, s := range segs {
		idea, ok := extractIdea(strings.Join(s.lines, "\n"))
		if !ok {
			skipped++
			log.Printf("parse: блок %d пропущен: не извлекается", n+1)
			continue
		}
		if !idea.Valid() {
			invalid++
			log.Printf("parse: блок %d отброшен валидацией (steps=%d)", n+1, len(idea.Steps))
			continue
		}
		ideas = append(ideas, idea)
	}

	if len(ideas) == 0 {
		if skipped == len(segs) {
			return nil, ErrNoIdeas
		}
		return nil, ErrAllInvalid
	}
	return ideas, nil
}

// ideaMarkerRest проверяет, является ли строка маркером «Идея N:»
// (допуская markdown-выделение в начале), и возвращает остаток строки
// после двоеточия — там начинается название идеи.
func ideaMarkerRest(line string) (string, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "*")
	s = strings.TrimSpace(s)

	const word = "Идея"
	if !strings.HasPrefix(s, word) {
		return "", false
	}
	s = strings.TrimLeft(s[len(word):], " ")

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i == len(s) || s[i] != ':' {
		return "", false
	}
	return s[i+1:], true
}

// extractIdea вычленяет поля идеи из текста одного блока.
// Блок начинается с названия (остаток маркерной строки либо первая
// непустая строка ниже).
func extractIdea(body string) (Idea, bool) {
	lines := strings.Split(body, "\n")

	title := ""
	rest := ""
	for i, ln := range lines {
		// Строки из одних звёздочек — обрывки выделения, не название.
		if t := trimEmphasis(ln); t != "" {
			title = t
			rest = strings.Join(lines[i+1:], "\n")
			break
		}
	}
	if title == "" {
		return Idea{}, false
	}

	idea := Idea{Title: title}

	if i := strings.Index(rest, markSolves); i >= 0 {
		idea.Description = trimEmphasis(rest[:i])
	}
	idea.Problem = sectionBetween(rest, markSolves, markTech)
	idea.Tech = sectionBetween(rest, markTech, markSteps)

	if i := strings.Index(rest, markSteps); i >= 0 {
		for _, ln := range strings.Split(rest[i+len(markSteps):], "\n") {
			if step, ok := stripOrdinal(ln); ok {
				idea.Steps = append(idea.Steps, step)
			}
		}
	}

	return idea, true
}

// sectionBetween — текст от маркера from до маркера to (или до конца блока,
// если to отсутствует: последняя секция часто обрывается).
func sectionBetween(s, from, to string) string {
	i := strings.Index(s, from)
	if i < 0 {
		return ""
	}
	v := s[i+len(from):]
	if j := strings.Index(v, to); j >= 0 {
		v = v[:j]
	}
	return trimEmphasis(v)
}

func trimEmphasis(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*")
	return strings.TrimSpace(s)
}

// stripOrdinal снимает с пункта списка префикс «N.» или «N)».
func stripOrdinal(line string) (string, bool) {
	s := strings.TrimSpace(line)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i == len(s) || (s[i] != '.' && s[i] != ')') {
		return "", false
	}
	out := strings.TrimSpace(s[i+1:])
	return out, out != ""
}
