package format

import (
	"fmt"
	"strconv"
	"strings"

	"assistant/internal/domain"
)

const forecastDaysShown = 2

// WeatherUnavailable is shown when there's no snapshot at all
const WeatherUnavailable = "❌ Не удалось получить данные о погоде. Попробуйте позже."

// Weather renders a snapshot for cityTitle. It never fails: a malformed snapshot
// yields an apology text.
func Weather(snapshot *domain.WeatherSnapshot, cityTitle string) string {
	if snapshot == nil {
		return WeatherUnavailable
	}
	city := EscapeMarkdown(cityTitle)
	if snapshot.Fact == nil {
		return fmt.Sprintf("❌ Неверный формат ответа сервиса погоды для %s. Попробуйте позже.", city)
	}

	fact := snapshot.Fact
	var b strings.Builder

	fmt.Fprintf(&b, "🌤️ *Погода:* %s\n\n", city)
	fmt.Fprintf(&b, "%s %s\n\n", ConditionIcon(fact.Condition), EscapeMarkdown(ConditionLabel(fact.Condition)))
	fmt.Fprintf(&b, "🌡️ *Температура:* %s\n", Temperature(fact.Temp))
	fmt.Fprintf(&b, "🌡️ *Ощущается как:* %s\n", Temperature(fact.FeelsLikeTemp()))

	if fact.WindSpeed > 0 || fact.Humidity > 0 || fact.PressureMM > 0 {
		b.WriteString("\n")
	}
	if fact.WindSpeed > 0 {
		fmt.Fprintf(&b, "💨 *Ветер:* %s %s м/с\n",
			EscapeMarkdown(WindDirection(fact.WindDir)),
			strconv.FormatFloat(fact.WindSpeed, 'f', -1, 64),
		)
	}
	if fact.Humidity > 0 {
		fmt.Fprintf(&b, "💧 *Влажность:* %d%%\n", fact.Humidity)
	}
	if fact.PressureMM > 0 {
		fmt.Fprintf(&b, "📊 *Давление:* %d мм рт. ст.\n", fact.PressureMM)
	}

	if rows := forecastRows(snapshot.Forecasts); rows != "" {
		b.WriteString("\n📅 *Прогноз на 2 дня:*\n")
		b.WriteString(rows)
	}

	return b.String()
}

// forecastRows renders the first days that carry a day part
func forecastRows(forecasts []domain.DailyForecast) string {
	if len(forecasts) > forecastDaysShown {
		forecasts = forecasts[:forecastDaysShown]
	}

	var b strings.Builder
	for _, forecast := range forecasts {
		day := forecast.Parts.Day
		if day == nil {
			continue
		}
		fmt.Fprintf(&b, "📅 *%s:* %s %s...%s\n",
			forecast.DisplayDate(),
			ConditionIcon(day.Condition),
			signed(day.TempMin)+"°",
			Temperature(day.TempMax),
		)
	}
	return b.String()
}

// Temperature renders degrees Celsius with an explicit sign
func Temperature(t int) string {
	return signed(t) + "°C"
}

func signed(v int) string {
	return fmt.Sprintf("%+d", v)
}
