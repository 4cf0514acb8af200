package format

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatArea: "are" и "hectare" выводятся как есть, всё остальное - квадратные метры.
func FormatArea(size float64, unit string) string {
	switch unit {
	case "are":
		return groupPlain(size) + " are"
	case "hectare":
		return groupPlain(size) + " ha"
	default:
		return groupDecimal(size) + " m²"
	}
}

func groupPlain(v float64) string {
	return strings.ReplaceAll(groupDecimal(v), ",", "")
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
)

func Slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Truncate обрезает текст до length символов и добавляет "...".
func Truncate(text string, length int) string {
	if utf8.RuneCountInString(text) <= length {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:length])) + "..."
}

var upper = cases.Upper(language.Und)

// Capitalize делает заглавной только первую букву, остальное не трогает.
func Capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return upper.String(string(first)) + s[size:]
}

var propertyTypeLabels = map[string]string{
	"villa":      "Villa",
	"house":      "House",
	"apartment":  "Apartment",
	"land":       "Land",
	"commercial": "Commercial",
}

var listingTypeLabels = map[string]string{
	"sale_freehold":   "Buy Freehold",
	"sale_leasehold":  "Buy Leasehold",
	"short_term_rent": "Rent Short-Term",
	"long_term_rent":  "Rent Long-Term",
}

// PropertyTypeLabel возвращает исходный код, если метка неизвестна.
func PropertyTypeLabel(code string) string {
	if label, ok := propertyTypeLabels[code]; ok {
		return label
	}
	return code
}

func ListingTypeLabel(code string) string {
	if label, ok := listingTypeLabels[code]; ok {
		return label
	}
	return code
}
