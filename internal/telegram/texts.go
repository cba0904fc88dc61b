package telegram

const (
	startText = "🌍 Добро пожаловать в <b>EarthVPN</b>!\n\n" +
		"Быстрый и надёжный VPN без логов.\n" +
		"Нажмите кнопку ниже, чтобы начать."

	mainMenuText = "Главное меню. Выберите раздел:"

	aboutText = "🌐 <b>О сервисе EarthVPN</b>\n\n" +
		"• Серверы в десятках стран\n" +
		"• Протоколы OpenVPN и WireGuard\n" +
		"• Без ограничений скорости и трафика\n" +
		"• Никаких логов"

	tariffsText = "💎 <b>Тарифы и подписка</b>\n\nВыберите тариф:"

	faqText = "❓ <b>Часто задаваемые вопросы</b>\n\nВыберите вопрос:"

	supportText = "🛡 <b>Поддержка</b>\n\n" +
		"Напишите нам, и мы ответим в течение пары часов."

	profileText = "👤 <b>Личный кабинет</b>\n\n%s"

	noSubscriptionText = "У вас нет активной подписки."

	subscriptionInfoText = "Тариф: <b>%s</b>\nДействует до: %s\nОсталось дней: %d"

	tariffInfoText = "<b>%s</b>\n\n%s\n\n" +
		"💰 Цена: %.0f руб.\n" +
		"📆 Срок: %d дней\n" +
		"📱 Устройств: %d\n" +
		"🌍 Страны: %s"

	paymentText = "💳 Выберите способ оплаты:"

	notFoundText = "Не найдено. Пожалуйста, обратитесь в поддержку."

	navigationHintText = "Пожалуйста, используйте меню для навигации. Отправьте /start чтобы начать заново."

	rateLimitToastText = "Пожалуйста, не нажимайте кнопки так часто. Подождите немного."

	rateLimitMessageText = "Вы отправляете слишком много сообщений. Пожалуйста, подождите немного."

	adminDeniedText = "⛔ У вас нет доступа к этому разделу"

	sorryText = "Что-то пошло не так. Попробуйте ещё раз позже."
)
