// Package badge сопоставляет статусы и флаги с меткой и цветовой категорией.
package badge

import (
	"strconv"

	"github.com/dendisuhubdy/mybalivillas/pkg/format"
)

type Variant string

const (
	VariantDefault Variant = "default"
	VariantInquiry Variant = "inquiry"
	VariantActive  Variant = "active"
)

// NeutralClass - категория для любых неизвестных значений.
const NeutralClass = "bg-slate-100 text-slate-600"

type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

var tables = map[Variant]map[string]string{
	VariantDefault: {
		"active":   "bg-green-100 text-green-700",
		"inactive": "bg-slate-100 text-slate-600",
		"pending":  "bg-yellow-100 text-yellow-700",
		"draft":    "bg-slate-100 text-slate-600",
	},
	VariantInquiry: {
		"new":     "bg-blue-100 text-blue-700",
		"read":    "bg-yellow-100 text-yellow-700",
		"replied": "bg-green-100 text-green-700",
		"closed":  "bg-slate-100 text-slate-600",
	},
	VariantActive: {
		"true":  "bg-green-100 text-green-700",
		"false": "bg-red-100 text-red-700",
	},
}

// Resolve никогда не падает: неизвестный вариант или значение дают NeutralClass.
func Resolve(variant Variant, value string) Badge {
	class, ok := tables[variant][value]
	if !ok {
		class = NeutralClass
	}
	return Badge{Label: label(variant, value), Class: class}
}

// Active - сокращение для булевых флагов is_active.
func Active(active bool) Badge {
	return Resolve(VariantActive, strconv.FormatBool(active))
}

func label(variant Variant, value string) string {
	if variant == VariantActive {
		switch value {
		case "true":
			return "Active"
		case "false":
			return "Inactive"
		}
	}
	return format.Capitalize(value)
}
