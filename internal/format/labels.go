package format

// FallbackIcon is shown for condition codes missing from the table
const FallbackIcon = "🌤️"

type conditionLabel struct {
	icon  string
	label string
}

var conditions = map[string]conditionLabel{
	"clear":                  {"☀️", "Ясно"},
	"partly-cloudy":          {"🌤️", "Малооблачно"},
	"cloudy":                 {"⛅", "Облачно с прояснениями"},
	"overcast":               {"☁️", "Пасмурно"},
	"drizzle":                {"🌦️", "Морось"},
	"light-rain":             {"🌦️", "Небольшой дождь"},
	"rain":                   {"🌧️", "Дождь"},
	"moderate-rain":          {"🌧️", "Умеренно сильный дождь"},
	"heavy-rain":             {"🌧️", "Сильный дождь"},
	"continuous-heavy-rain":  {"🌧️", "Длительный сильный дождь"},
	"showers":                {"🌧️", "Ливень"},
	"wet-snow":               {"🌨️", "Дождь со снегом"},
	"light-snow":             {"🌨️", "Небольшой снег"},
	"snow":                   {"❄️", "Снег"},
	"snow-showers":           {"❄️", "Снегопад"},
	"hail":                   {"🧊", "Град"},
	"thunderstorm":           {"⛈️", "Гроза"},
	"thunderstorm-with-rain": {"⛈️", "Дождь с грозой"},
	"thunderstorm-with-hail": {"⛈️", "Гроза с градом"},
}

var windDirections = map[string]string{
	"nw": "северо-западный",
	"n":  "северный",
	"ne": "северо-восточный",
	"e":  "восточный",
	"se": "юго-восточный",
	"s":  "южный",
	"sw": "юго-западный",
	"w":  "западный",
	"c":  "штиль",
}

// ConditionIcon returns the emoji for a condition code
func ConditionIcon(code string) string {
	if c, ok := conditions[code]; ok {
		return c.icon
	}
	return FallbackIcon
}

// ConditionLabel returns the Russian label for a condition code, or the code itself
func ConditionLabel(code string) string {
	if c, ok := conditions[code]; ok {
		return c.label
	}
	return code
}

// WindDirection returns the Russian label for a wind direction code, or the code itself
func WindDirection(code string) string {
	if label, ok := windDirections[code]; ok {
		return label
	}
	return code
}
