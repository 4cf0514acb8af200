// Package querycodec переводит наборы фильтров в query string и обратно.
package querycodec

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Params - имя поля -> необязательное скалярное значение.
type Params map[string]any

// Encode возвращает query string без ведущего "?". Поля со значением nil,
// пустой строкой или nil-указателем пропускаются.
func Encode(p Params) string {
	values := url.Values{}
	for key, raw := range p {
		if s, ok := formatValue(raw); ok {
			values.Set(key, s)
		}
	}
	return values.Encode()
}

// WithPrefix возвращает "?<query>" либо пустую строку, если полей нет.
func WithPrefix(p Params) string {
	if qs := Encode(p); qs != "" {
		return "?" + qs
	}
	return ""
}

// MergePageURL собирает ссылку на страницу списка: текущие параметры + overrides.
// Значение nil в overrides удаляет параметр.
func MergePageURL(path string, params, overrides Params) string {
	merged := make(Params, len(params)+len(overrides))
	for k, v := range params {
		merged[k] = v
	}
	for k, v := range overrides {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return path + WithPrefix(merged)
}

func formatValue(raw any) (string, bool) {
	if raw == nil {
		return "", false
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		return formatValue(rv.Elem().Interface())
	}

	switch v := raw.(type) {
	case string:
		return v, v != ""
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case fmt.Stringer:
		s := v.String()
		return s, s != ""
	default:
		s := fmt.Sprint(v)
		return s, s != ""
	}
}

// intParam разбирает целое; пустое или некорректное значение -> nil.
func intParam(q url.Values, key string) *int {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func floatParam(q url.Values, key string) *float64 {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// flagParam: флаг присутствует только в виде литерала "true".
func flagParam(q url.Values, key string) bool {
	return q.Get(key) == "true"
}

// positiveOr возвращает значение указателя, если оно > 0, иначе def.
func positiveOr(v *int, def int) int {
	if v != nil && *v > 0 {
		return *v
	}
	return def
}
