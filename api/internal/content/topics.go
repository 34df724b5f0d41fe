// Package content — статические обучающие материалы.
package content

// Topic — одна обучающая тема с готовым текстом для показа.
type Topic struct {
	Key   string
	Title string
	Body  string
}

var topics = []Topic{
	{
		Key:   "cursor",
		Title: "🖥 Cursor — редактор кода с AI",
		Body: `*Cursor — редактор кода с AI*

Cursor — это редактор кода, в который встроен AI-помощник.

*С чего начать:*
1. Скачай Cursor с cursor.com и установи
2. Открой папку проекта (File → Open Folder)
3. Нажми Cmd/Ctrl+K и опиши, что хочешь сделать — AI предложит код
4. В чате (Cmd/Ctrl+L) можно задавать вопросы про свой код

Совет: формулируй задачу маленькими шагами — так AI ошибается реже.`,
	},
	{
		Key:   "github",
		Title: "🐙 GitHub — платформа для кода",
		Body: `*GitHub — платформа для кода*

GitHub хранит твой код в облаке и показывает его историю.

*С чего начать:*
1. Зарегистрируйся на github.com
2. Нажми New repository, придумай имя проекта
3. Репозиторий — это папка проекта с историей всех изменений
4. README.md — визитка проекта, опиши в нём, что это и зачем`,
	},
	{
		Key:   "git",
		Title: "🌿 Git — контроль версий",
		Body: `*Git — контроль версий*

Git запоминает состояния проекта, чтобы можно было вернуться назад.

*Базовые команды:*
1. git init — включить Git в папке проекта
2. git add . — отметить изменённые файлы
3. git commit -m "что сделал" — сохранить снимок
4. git log — посмотреть историю`,
	},
	{
		Key:   "cursor_github",
		Title: "🔗 Связка Cursor + GitHub",
		Body: `*Связка Cursor + GitHub*

Cursor умеет работать с Git прямо из редактора.

*Как связать:*
1. Открой вкладку Source Control (иконка с ветками)
2. Initialize Repository — включает Git в проекте
3. Напиши сообщение и нажми Commit
4. Publish Branch — создаст репозиторий на GitHub и привяжет его`,
	},
	{
		Key:   "push",
		Title: "⬆️ Push кода на GitHub",
		Body: `*Push кода на GitHub*

Push отправляет локальные коммиты в репозиторий на GitHub.

*Шаги:*
1. git remote add origin <ссылка на репозиторий> — один раз
2. git push -u origin main — первая отправка
3. Дальше просто git push после каждого коммита
4. Обнови страницу репозитория — код на месте`,
	},
	{
		Key:   "railway",
		Title: "🚂 Деплой на Railway",
		Body: `*Деплой на Railway*

Railway запускает проект из GitHub-репозитория в облаке.

*Шаги:*
1. Зайди на railway.app через GitHub-аккаунт
2. New Project → Deploy from GitHub repo
3. Выбери репозиторий — Railway сам соберёт и запустит проект
4. Переменные окружения добавляются во вкладке Variables`,
	},
}

// Topics возвращает темы в порядке показа в меню.
func Topics() []Topic { return topics }

// Find ищет тему по ключу из callback-токена.
func Find(key string) (Topic, bool) {
	for _, t := range topics {
		if t.Key == key {
			return t, true
		}
	}
	return Topic{}, false
}
