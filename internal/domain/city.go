package domain

import "strings"

// City is a supported weather location
type City struct {
	Name      string // Lowercase lookup key
	Title     string // Display name
	Latitude  float64
	Longitude float64
}

// NormalizeCityName turns user input into a lookup key
func NormalizeCityName(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
