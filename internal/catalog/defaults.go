package catalog

var defaultCatalog = Catalog{
	Tariffs: []Tariff{
		{
			ID:           1,
			Name:         "Базовый",
			Price:        100,
			DurationDays: 30,
			DeviceCount:  1,
			Description:  "Один месяц защищённого соединения для одного устройства.",
			Countries:    []string{"Нидерланды", "Германия", "Финляндия"},
		},
		{
			ID:           2,
			Name:         "Стандарт",
			Price:        250,
			DurationDays: 90,
			DeviceCount:  3,
			Description:  "Три месяца, до трёх устройств, приоритетные серверы.",
			Countries:    []string{"Нидерланды", "Германия", "Финляндия", "США", "Япония"},
		},
		{
			ID:           3,
			Name:         "Премиум",
			Price:        800,
			DurationDays: 365,
			DeviceCount:  5,
			Description:  "Год подписки, до пяти устройств, все локации без ограничений.",
			Countries: []string{
				"Нидерланды", "Германия", "Финляндия", "США", "Япония",
				"Сингапур", "Великобритания", "Канада",
			},
		},
	},
	FAQ: []FAQItem{
		{
			Question: "Как подключиться к VPN?",
			Answer:   "После оплаты тарифа скачайте конфигурационный файл в личном кабинете и импортируйте его в приложение OpenVPN или WireGuard.",
		},
		{
			Question: "На скольких устройствах можно использовать VPN?",
			Answer:   "Количество устройств зависит от тарифа: от одного на «Базовом» до пяти на «Премиум».",
		},
		{
			Question: "Ведёте ли вы логи?",
			Answer:   "Нет, мы не храним историю подключений и трафика пользователей.",
		},
		{
			Question: "Что делать, если VPN не работает?",
			Answer:   "Проверьте срок действия подписки в личном кабинете и напишите в поддержку — мы поможем.",
		},
	},
	PaymentMethods: []PaymentMethod{
		{
			ID:          "card",
			Name:        "💳 Банковская карта",
			Instruction: "Для оплаты картой перейдите по ссылке: <a href='https://example.com/pay'>Оплатить</a>",
		},
		{
			ID:          "crypto",
			Name:        "₿ Криптовалюта",
			Instruction: "Отправьте Bitcoin на адрес: <code>bc1q...</code>",
		},
		{
			ID:          "qiwi",
			Name:        "🥝 QIWI",
			Instruction: "Номер QIWI кошелька: <code>+79XXXXXXXXX</code>",
		},
		{
			ID:          "yoomoney",
			Name:        "💜 ЮMoney",
			Instruction: "Номер ЮMoney: <code>41001XXXXXXXXX</code>",
		},
	},
}
