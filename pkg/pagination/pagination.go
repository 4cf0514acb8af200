// Package pagination считает кнопки постраничной навигации и общий размер выборки.
package pagination

import "fmt"

// maxPlainPages - до этого количества страниц показываются все номера без "...".
const maxPlainPages = 7

// Indicator - один элемент навигации: номер страницы или многоточие.
type Indicator struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// Controls - всё, что нужно отрисовать под таблицей или списком.
type Controls struct {
	Items        []Indicator `json:"items"`
	CurrentPage  int         `json:"current_page"`
	TotalPages   int         `json:"total_pages"`
	PrevDisabled bool        `json:"prev_disabled"`
	NextDisabled bool        `json:"next_disabled"`
	Label        string      `json:"label"`
}

// Build возвращает nil, если страниц не больше одной.
// Номер текущей страницы не ограничивается: вызывающий код не должен
// запрашивать переход за границы (кнопки prev/next для этого отключаются).
func Build(current, total int) *Controls {
	if total <= 1 {
		return nil
	}
	return &Controls{
		Items:        indicators(current, total),
		CurrentPage:  current,
		TotalPages:   total,
		PrevDisabled: current <= 1,
		NextDisabled: current >= total,
		Label:        fmt.Sprintf("Page %d of %d", current, total),
	}
}

func indicators(current, total int) []Indicator {
	page := func(n int) Indicator { return Indicator{Page: n, Current: n == current} }

	if total <= maxPlainPages {
		items := make([]Indicator, 0, total)
		for i := 1; i <= total; i++ {
			items = append(items, page(i))
		}
		return items
	}

	items := []Indicator{page(1)}
	if current > 3 {
		items = append(items, Indicator{Ellipsis: true})
	}
	for i := max(2, current-1); i <= min(total-1, current+1); i++ {
		items = append(items, page(i))
	}
	if current < total-2 {
		items = append(items, Indicator{Ellipsis: true})
	}
	return append(items, page(total))
}

// Sequence - плоское представление индикаторов: номера страниц и "...".
func (c *Controls) Sequence() []any {
	if c == nil {
		return nil
	}
	seq := make([]any, len(c.Items))
	for i, it := range c.Items {
		if it.Ellipsis {
			seq[i] = "..."
		} else {
			seq[i] = it.Page
		}
	}
	return seq
}

// TotalPages - количество страниц для total элементов по perPage на страницу.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Page - одна страница выборки.
type Page[T any] struct {
	Items      []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// Controls строит навигацию для страницы.
func (p Page[T]) Controls() *Controls {
	return Build(p.Page, p.TotalPages)
}
