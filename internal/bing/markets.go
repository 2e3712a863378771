package bing

import "strings"

// Market is a Bing market region
type Market struct {
	Code string // e.g. "en-US"
	Name string
	Flag string
}

// DisplayName returns the flag followed by the name
func (m Market) DisplayName() string {
	return m.Flag + " " + m.Name
}

// Markets lists the regions the archive serves, grouped by area
var Markets = []Market{
	// Global/English
	{Code: "en-AU", Name: "Australia", Flag: "🇦🇺"},
	{Code: "en-CA", Name: "Canada", Flag: "🇨🇦"},
	{Code: "en-IN", Name: "India", Flag: "🇮🇳"},
	{Code: "en-GB", Name: "United Kingdom", Flag: "🇬🇧"},
	{Code: "en-US", Name: "United States", Flag: "🇺🇸"},

	// Americas
	{Code: "es-AR", Name: "Argentina", Flag: "🇦🇷"},
	{Code: "pt-BR", Name: "Brazil", Flag: "🇧🇷"},
	{Code: "es-CL", Name: "Chile", Flag: "🇨🇱"},
	{Code: "es-CO", Name: "Colombia", Flag: "🇨🇴"},
	{Code: "es-MX", Name: "Mexico", Flag: "🇲🇽"},
	{Code: "es-PE", Name: "Peru", Flag: "🇵🇪"},

	// Europe
	{Code: "de-AT", Name: "Austria", Flag: "🇦🇹"},
	{Code: "nl-BE", Name: "Belgium (Dutch)", Flag: "🇧🇪"},
	{Code: "fr-BE", Name: "Belgium (French)", Flag: "🇧🇪"},
	{Code: "bg-BG", Name: "Bulgaria", Flag: "🇧🇬"},
	{Code: "hr-HR", Name: "Croatia", Flag: "🇭🇷"},
	{Code: "cs-CZ", Name: "Czech Republic", Flag: "🇨🇿"},
	{Code: "da-DK", Name: "Denmark", Flag: "🇩🇰"},
	{Code: "fi-FI", Name: "Finland", Flag: "🇫🇮"},
	{Code: "fr-FR", Name: "France", Flag: "🇫🇷"},
	{Code: "de-DE", Name: "Germany", Flag: "🇩🇪"},
	{Code: "el-GR", Name: "Greece", Flag: "🇬🇷"},
	{Code: "hu-HU", Name: "Hungary", Flag: "🇭🇺"},
	{Code: "it-IT", Name: "Italy", Flag: "🇮🇹"},
	{Code: "nl-NL", Name: "Netherlands", Flag: "🇳🇱"},
	{Code: "nb-NO", Name: "Norway", Flag: "🇳🇴"},
	{Code: "pl-PL", Name: "Poland", Flag: "🇵🇱"},
	{Code: "pt-PT", Name: "Portugal", Flag: "🇵🇹"},
	{Code: "ro-RO", Name: "Romania", Flag: "🇷🇴"},
	{Code: "ru-RU", Name: "Russia", Flag: "🇷🇺"},
	{Code: "sr-RS", Name: "Serbia", Flag: "🇷🇸"},
	{Code: "sk-SK", Name: "Slovakia", Flag: "🇸🇰"},
	{Code: "sl-SI", Name: "Slovenia", Flag: "🇸🇮"},
	{Code: "es-ES", Name: "Spain", Flag: "🇪🇸"},
	{Code: "sv-SE", Name: "Sweden", Flag: "🇸🇪"},
	{Code: "fr-CH", Name: "Switzerland (French)", Flag: "🇨🇭"},
	{Code: "de-CH", Name: "Switzerland (German)", Flag: "🇨🇭"},
	{Code: "uk-UA", Name: "Ukraine", Flag: "🇺🇦"},

	// Asia Pacific
	{Code: "zh-CN", Name: "China", Flag: "🇨🇳"},
	{Code: "zh-HK", Name: "Hong Kong", Flag: "🇭🇰"},
	{Code: "zh-TW", Name: "Taiwan", Flag: "🇹🇼"},
	{Code: "id-ID", Name: "Indonesia", Flag: "🇮🇩"},
	{Code: "ja-JP", Name: "Japan", Flag: "🇯🇵"},
	{Code: "ko-KR", Name: "Korea", Flag: "🇰🇷"},
	{Code: "ms-MY", Name: "Malaysia", Flag: "🇲🇾"},
	{Code: "en-PH", Name: "Philippines", Flag: "🇵🇭"},
	{Code: "en-SG", Name: "Singapore", Flag: "🇸🇬"},
	{Code: "th-TH", Name: "Thailand", Flag: "🇹🇭"},
	{Code: "vi-VN", Name: "Vietnam", Flag: "🇻🇳"},

	// Middle East and Africa
	{Code: "ar-EG", Name: "Egypt", Flag: "🇪🇬"},
	{Code: "he-IL", Name: "Israel", Flag: "🇮🇱"},
	{Code: "ar-SA", Name: "Saudi Arabia", Flag: "🇸🇦"},
	{Code: "en-ZA", Name: "South Africa", Flag: "🇿🇦"},
	{Code: "tr-TR", Name: "Turkey", Flag: "🇹🇷"},
	{Code: "ar-AE", Name: "UAE", Flag: "🇦🇪"},
}

// PopularMarketCodes are shown first in pickers
var PopularMarketCodes = []string{"en-US", "en-GB", "de-DE", "fr-FR", "ja-JP", "zh-CN", "ko-KR", "vi-VN"}

// LookupMarket finds a market by code, ignoring case
func LookupMarket(code string) (Market, bool) {
	for _, m := range Markets {
		if strings.EqualFold(m.Code, code) {
			return m, true
		}
	}
	return Market{}, false
}

// PopularMarkets returns the markets named in PopularMarketCodes
func PopularMarkets() []Market {
	result := make([]Market, 0, len(PopularMarketCodes))
	for _, code := range PopularMarketCodes {
		if m, ok := LookupMarket(code); ok {
			result = append(result, m)
		}
	}
	return result
}
