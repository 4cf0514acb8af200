// Package format превращает сырые значения (цены, площади, коды enum) в строки для показа.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"AUD": "A$",
}

var periodSuffixes = map[string]string{
	"per_year":  "/year",
	"per_month": "/month",
	"per_week":  "/week",
	"per_day":   "/day",
}

// FormatPrice: USD и прочие валюты - символ и целое число с разделителями,
// IDR сокращается до миллиардов (1 знак) и миллионов (0 знаков).
// Период "total" или пустой суффикса не добавляет.
func FormatPrice(price float64, currency, period string) string {
	if currency == "" {
		currency = "USD"
	}

	var formatted string
	switch currency {
	case "IDR":
		switch {
		case price >= 1_000_000_000:
			formatted = fmt.Sprintf("Rp %.1fB", math.Round(price/100_000_000)/10)
		case price >= 1_000_000:
			formatted = fmt.Sprintf("Rp %dM", int64(math.Round(price/1_000_000)))
		default:
			formatted = "Rp " + groupDecimal(price)
		}
	default:
		formatted = currencyPrefix(currency) + printer.Sprintf("%d", int64(math.Round(price)))
	}

	return formatted + periodSuffixes[period]
}

func currencyPrefix(code string) string {
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code + " "
}

// groupDecimal печатает число с разделителями групп и не более чем тремя знаками дробной части.
func groupDecimal(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
