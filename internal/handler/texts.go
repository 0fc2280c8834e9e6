package handler

import (
	"fmt"
	"strings"

	"assistant/internal/format"
)

const (
	MainMenuText = "🏠 *Главное меню*\n\nВыберите, что вас интересует:"

	greetingText = "👋 Привет! Я бот-помощник.\n\n" +
		"🌤️ подскажу погоду в городе\n" +
		"🛒 помогу найти товар\n" +
		"🏠 подберу объявления о недвижимости\n\n" + MainMenuText

	helpText = "ℹ️ *Что умеет бот*\n\n" +
		"🌤️ *Погода* — текущая погода и прогноз на два дня\n" +
		"🛒 *Поиск товаров* — поиск по каталогу и ссылка на Яндекс Маркет\n" +
		"🏠 *Недвижимость* — ссылка на объявления Авито по вашему запросу\n\n" +
		"Выберите раздел в меню и отправьте запрос текстом.\n" +
		"/start или /menu — вернуться в главное меню"

	idleHintText     = "🤔 Не понимаю, что нужно сделать. Выберите раздел с помощью кнопок:"
	textOnlyHintText = "📝 Я понимаю только текстовые сообщения. Выберите раздел в меню или отправьте запрос текстом."

	productPromptText = "🛒 *Поиск товаров*\n\n" +
		"🔍 Введите название товара для поиска:\n\n" +
		"📝 *Примеры запросов:*\n" +
		"• смартфон\n" +
		"• наушники\n" +
		"• кроссовки\n" +
		"• планшет\n" +
		"• фитнес браслет\n\n" +
		"💡 *Просто напишите, что ищете!*"

	productSearchAgainText = "🔍 Введите новый запрос для поиска товаров:"
	emptyProductQueryText  = "✍️ Запрос пустой. Напишите, какой товар найти:"

	categoriesText = "📂 *Поиск по категориям*\n\n" +
		"📱 *Электроника:*\n" +
		"• смартфоны\n" +
		"• наушники\n" +
		"• планшеты\n\n" +
		"👟 *Одежда и обувь:*\n" +
		"• кроссовки\n" +
		"• куртки\n" +
		"• джинсы\n\n" +
		"🏠 *Дом и сад:*\n" +
		"• мебель\n" +
		"• посуда\n" +
		"• декор\n\n" +
		"💡 *Введите название категории или конкретного товара:*"

	realEstatePromptText = "🏠 *Поиск недвижимости*\n\n" +
		"Опишите, что ищете, например:\n" +
		"• 2-комнатная квартира аренда\n" +
		"• дом в Подмосковье\n" +
		"• студия Тюмень\n\n" +
		"Я пришлю ссылку на подходящие объявления."

	emptyRealEstateQueryText = "✍️ Запрос пустой. Опишите, какую недвижимость найти:"

	weatherFailedText = "❌ Не удалось получить погоду. Попробуйте позже или выберите другой город."

	marketButtonText     = "🔎 Искать на Яндекс Маркете"
	realEstateButtonText = "🏠 Открыть объявления на Авито"
)

func weatherPromptText(cities []string) string {
	return "🌤️ *Погода*\n\nНапишите название города.\n\n" +
		"🏙️ *Доступные города:* " + strings.Join(cities, ", ")
}

func cityNotFoundText(input string, cities []string) string {
	return fmt.Sprintf("❌ Город %s не найден.\n\n🏙️ *Доступные города:* %s",
		format.EscapeMarkdown(input), strings.Join(cities, ", "))
}

func realEstateResultText(query string) string {
	return fmt.Sprintf("🏠 *Поиск недвижимости*\n\n🔍 По запросу: %s\n\n👇 Нажмите кнопку, чтобы открыть объявления",
		format.EscapeMarkdown(query))
}
