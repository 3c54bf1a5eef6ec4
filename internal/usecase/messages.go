package usecase

import (
	"github.com/iamvkosarev/codeninja-telegram-bot/pkg/local"
)

var (
	MessageAccessDenied = local.NewSet(
		"⛔ *ACCESS DENIED*\n\n⚠️ You must join our official channel to use *%s*.\n👉 %s",
		local.NewTrans(local.Rus, "⛔ *ДОСТУП ЗАКРЫТ*\n\n⚠️ Подпишитесь на официальный канал, чтобы пользоваться *%s*.\n👉 %s"),
	)
	ButtonJoinChannel = local.NewSet(
		"🚀 Join Channel to Access",
		local.NewTrans(local.Rus, "🚀 Подписаться на канал"),
	)
	MessageWelcome = local.NewSet(
		"🤖 *WELCOME TO %s* ⚡\n"+
			"_The Ultimate Developer & Hacking Assistant._\n\n"+
			"🚀 *AVAILABLE COMMANDS:*\n"+
			"💻 `/code (topic)` - Generate Scripts (Py, JS, PHP)\n"+
			"🛠 `/fix (error)` - Analyze & Fix Bugs\n"+
			"📋 `/plan (idea)` - Get a Project Roadmap\n"+
			"🔒 `/audit (code)` - Check Security Vulnerabilities\n"+
			"📝 `/prompt (topic)` - Generate AI Prompts\n"+
			"💬 `/chat` - Developer Mode Chat\n\n"+
			"🖼 `/codeimg` - Generate syntax-highlighted code image\n"+
			"🎨 `/theme` - Set code image theme (red, blue, pink)\n\n"+
			"🛡 _System Online. Waiting for input..._",
		local.NewTrans(local.Rus,
			"🤖 *ДОБРО ПОЖАЛОВАТЬ В %s* ⚡\n"+
				"_Ассистент разработчика и специалиста по безопасности._\n\n"+
				"🚀 *КОМАНДЫ:*\n"+
				"💻 `/code (тема)` - Написать скрипт (Py, JS, PHP)\n"+
				"🛠 `/fix (ошибка)` - Найти и исправить баги\n"+
				"📋 `/plan (идея)` - План проекта\n"+
				"🔒 `/audit (код)` - Проверка уязвимостей\n"+
				"📝 `/prompt (тема)` - Промпт для нейросети\n"+
				"💬 `/chat` - Свободный диалог\n\n"+
				"🖼 `/codeimg` - Картинка с подсветкой кода\n"+
				"🎨 `/theme` - Тема картинок (red, blue, pink)\n\n"+
				"🛡 _Система в сети. Жду ввода..._",
		),
	)
	ButtonDeveloper = local.NewSet("👨‍💻 Developer", local.NewTrans(local.Rus, "👨‍💻 Разработчик"))
	ButtonChannel   = local.NewSet("📢 Channel", local.NewTrans(local.Rus, "📢 Канал"))
	ButtonInstagram = local.NewSet("📸 Instagram")
	ButtonYouTube   = local.NewSet("▶️ YouTube")

	MessageUsageCode = local.NewSet(
		"💻 *Usage:* `/code python telegram bot` (use `--text` to get plain text, `--file` to download)",
		local.NewTrans(local.Rus, "💻 *Использование:* `/code python telegram bot` (`--text` для текста, `--file` для файла)"),
	)
	MessageUsageFix = local.NewSet(
		"🛠 *Usage:* `/fix (paste code or error)`",
		local.NewTrans(local.Rus, "🛠 *Использование:* `/fix (код или ошибка)`"),
	)
	MessageUsagePlan = local.NewSet(
		"📋 *Usage:* `/plan (project idea)`\nEx: `/plan To-Do App in Python`",
		local.NewTrans(local.Rus, "📋 *Использование:* `/plan (идея проекта)`\nПример: `/plan To-Do App in Python`"),
	)
	MessageUsageAudit = local.NewSet(
		"🔒 *Usage:* `/audit (paste code)`",
		local.NewTrans(local.Rus, "🔒 *Использование:* `/audit (код)`"),
	)
	MessageUsagePrompt = local.NewSet(
		"📝 *Usage:* `/prompt (topic)`",
		local.NewTrans(local.Rus, "📝 *Использование:* `/prompt (тема)`"),
	)
	MessageUsageCodeImage = local.NewSet(
		"💡 Usage: /codeimg python <short prompt or paste code block>",
		local.NewTrans(local.Rus, "💡 Использование: /codeimg python <короткий запрос или блок кода>"),
	)
	MessageChatActive = local.NewSet(
		"💬 *Developer Mode Active.* Ask me anything.",
		local.NewTrans(local.Rus, "💬 *Режим разработчика включен.* Спрашивайте."),
	)
	MessageCommandUnknown = local.NewSet(
		"❓ Unknown command. Use /start to see what I can do.",
		local.NewTrans(local.Rus, "❓ Неизвестная команда. Список команд: /start"),
	)

	StatusCompiling = local.NewSet("⚡ *Compiling Code...*", local.NewTrans(local.Rus, "⚡ *Пишу код...*"))
	StatusDebugging = local.NewSet("🔍 *Debugging System...*", local.NewTrans(local.Rus, "🔍 *Ищу ошибки...*"))
	StatusPlanning  = local.NewSet("🧠 *Constructing Roadmap...*", local.NewTrans(local.Rus, "🧠 *Составляю план...*"))
	StatusAuditing  = local.NewSet(
		"🛡 *Scanning for Vulnerabilities...*",
		local.NewTrans(local.Rus, "🛡 *Ищу уязвимости...*"),
	)
	StatusPrompting      = local.NewSet("✍️ *Crafting Prompt...*", local.NewTrans(local.Rus, "✍️ *Пишу промпт...*"))
	StatusRenderingImage = local.NewSet(
		"⚡ Generating code image...",
		local.NewTrans(local.Rus, "⚡ Рисую картинку с кодом..."),
	)

	MessageThemeCurrent = local.NewSet(
		"🎨 Current theme: %s. Available: %s",
		local.NewTrans(local.Rus, "🎨 Текущая тема: %s. Доступны: %s"),
	)
	MessageThemeInvalid = local.NewSet(
		"❌ Invalid theme. Choose from: %s",
		local.NewTrans(local.Rus, "❌ Неизвестная тема. Выберите: %s"),
	)
	MessageThemeSet = local.NewSet(
		"✅ Theme set to: %s",
		local.NewTrans(local.Rus, "✅ Тема установлена: %s"),
	)
	MessageThemeFailed = local.NewSet(
		"⚠️ Failed to save theme. Try later",
		local.NewTrans(local.Rus, "⚠️ Не удалось сохранить тему. Попробуйте позже"),
	)
)
