package domain

import "sort"

const (
	recentLimit = 5
	minBarWidth = 8.0
)

type CountEntry struct {
	Label string
	Count int
}

type DashboardStats struct {
	TotalProperties  int
	ActiveListings   int
	TotalUsers       int
	TotalInquiries   int
	NewInquiries     int
	TotalViews       int
	PropertiesByType []CountEntry
	PropertiesByArea []CountEntry
	RecentInquiries  []Inquiry
	RecentProperties []Property
}

// Bar - полоса диаграммы; Width в процентах.
type Bar struct {
	Label string
	Count int
	Width float64
}

type Dashboard struct {
	Stats            DashboardStats
	TypeBars         []Bar
	AreaBars         []Bar
	RecentInquiries  []Inquiry
	RecentProperties []Property
}

func NewDashboard(stats DashboardStats) Dashboard {
	return Dashboard{
		Stats:            stats,
		TypeBars:         Bars(stats.PropertiesByType),
		AreaBars:         Bars(stats.PropertiesByArea),
		RecentInquiries:  clamp(stats.RecentInquiries, recentLimit),
		RecentProperties: clamp(stats.RecentProperties, recentLimit),
	}
}

// Bars: ширина = max(count/max*100, 8), максимум не меньше 1.
func Bars(entries []CountEntry) []Bar {
	maxCount := 1
	for _, e := range entries {
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}
	bars := make([]Bar, len(entries))
	for i, e := range entries {
		width := float64(e.Count) / float64(maxCount) * 100
		if width < minBarWidth {
			width = minBarWidth
		}
		bars[i] = Bar{Label: e.Label, Count: e.Count, Width: width}
	}
	return bars
}

// SortCounts упорядочивает по убыванию количества, при равенстве - по имени.
func SortCounts(entries []CountEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
}

func clamp[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
