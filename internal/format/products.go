package format

import (
	"fmt"
	"strings"

	"assistant/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	detailedResults  = 3
	buttonLabelRunes = 30
)

var pricePrinter = message.NewPrinter(language.English)

// Price renders an amount in rubles with thousands separators
func Price(amount int) string {
	return pricePrinter.Sprintf("%d", amount) + "₽"
}

// Products renders search results for query
func Products(products []domain.Product, query string) string {
	q := EscapeMarkdown(query)
	if len(products) == 0 {
		return fmt.Sprintf("❌ *Товары не найдены*\n\n"+
			"🔍 По запросу %s ничего не найдено.\n\n"+
			"💡 *Попробуйте:*\n"+
			"• другие ключевые слова\n"+
			"• менее специфичный запрос\n"+
			"• проверить правильность написания", q)
	}

	var b strings.Builder
	b.WriteString("🛒 *Результаты поиска*\n\n")
	fmt.Fprintf(&b, "🔍 По запросу: %s\n", q)
	fmt.Fprintf(&b, "📦 Найдено товаров: *%d*\n\n", len(products))

	writeDetails(&b, products)

	if rest := len(products) - detailedResults; rest > 0 {
		fmt.Fprintf(&b, "💡 И ещё *%d* — выберите из списка ниже!\n\n", rest)
	}
	b.WriteString("👇 *Нажмите на товар, чтобы перейти в магазин*")

	return b.String()
}

// Deals renders the best discounted offers
func Deals(products []domain.Product) string {
	if len(products) == 0 {
		return "🔥 *Лучшие предложения дня*\n\nСейчас нет товаров со скидкой."
	}

	var b strings.Builder
	b.WriteString("🔥 *Лучшие предложения дня*\n\n")
	fmt.Fprintf(&b, "💰 Товаров со скидками: *%d*\n\n", len(products))

	writeDetails(&b, products)

	if rest := len(products) - detailedResults; rest > 0 {
		fmt.Fprintf(&b, "💡 И ещё *%d* выгодных предложений — выберите из списка ниже!\n\n", rest)
	}
	b.WriteString("👇 *Нажмите на товар, чтобы перейти в магазин*")

	return b.String()
}

// ProductButton returns a short label for a product link button
func ProductButton(p domain.Product) string {
	name := []rune(p.Name)
	label := p.Name
	if len(name) > buttonLabelRunes {
		label = string(name[:buttonLabelRunes]) + "…"
	}
	return fmt.Sprintf("🛍️ %s - %s", label, Price(p.Price))
}

func writeDetails(b *strings.Builder, products []domain.Product) {
	for i, p := range products {
		if i == detailedResults {
			break
		}
		fmt.Fprintf(b, "*%d.* %s\n", i+1, EscapeMarkdown(p.Name))
		fmt.Fprintf(b, "💰 Цена: %s", Price(p.Price))
		if p.OldPrice != nil {
			fmt.Fprintf(b, " (было %s)", Price(*p.OldPrice))
		}
		if p.Discount != "" {
			fmt.Fprintf(b, " %s", p.Discount)
		}
		fmt.Fprintf(b, "\n⭐ Рейтинг: %.1f/5 (%d отзывов)\n", p.Rating, p.ReviewsCount)
		fmt.Fprintf(b, "🏷️ Бренд: %s\n", EscapeMarkdown(p.Brand))
		if !p.InStock {
			b.WriteString("🚫 Нет в наличии\n")
		}
		b.WriteString("\n")
	}
}
