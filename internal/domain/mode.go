package domain

import "time"

// Mode represents how the next text message in a chat is interpreted
type Mode string

const (
	ModeIdle                    Mode = "idle"
	ModeAwaitingWeatherCity     Mode = "awaiting_weather_city"
	ModeAwaitingProductQuery    Mode = "awaiting_product_query"
	ModeAwaitingRealEstateQuery Mode = "awaiting_real_estate_query"
)

// Session holds the conversational state of a single chat
type Session struct {
	Mode      Mode
	UpdatedAt time.Time
}

// Expired reports whether the session has been untouched for longer than ttl.
// A non-positive ttl never expires.
func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.UpdatedAt) > ttl
}
