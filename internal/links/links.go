package links

import (
	"net/url"
	"strings"
)

const (
	marketSearchURL     = "https://market.yandex.ru/search?text="
	realEstateSearchURL = "https://www.avito.ru/rossiya/nedvizhimost?q="
)

// MarketSearch builds a marketplace search-results link for query
func MarketSearch(query string) string {
	return marketSearchURL + escape(query)
}

// RealEstateSearch builds a classifieds real-estate search link for query
func RealEstateSearch(query string) string {
	return realEstateSearchURL + escape(query)
}

// escape percent-encodes query so that plain percent-decoding restores it,
// spaces included.
func escape(query string) string {
	return strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}
