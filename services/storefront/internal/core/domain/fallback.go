package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
)

//go:embed fallback_data.json
var fallbackJSON []byte

// встроенный набор данных витрины на случай недоступности API
var (
	fallbackProperties []Property
	fallbackAreas      []Area
)

type fallbackImage struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"is_primary"`
	Order     int    `json:"order"`
}

type fallbackAgent struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	PropertiesCount int    `json:"properties_count"`
}

type fallbackProperty struct {
	ID               string          `json:"id"`
	Slug             string          `json:"slug"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	PropertyType     string          `json:"property_type"`
	ListingType      string          `json:"listing_type"`
	Status           string          `json:"status"`
	Price            float64         `json:"price"`
	Currency         string          `json:"currency"`
	PricePeriod      string          `json:"price_period"`
	Bedrooms         int             `json:"bedrooms"`
	Bathrooms        int             `json:"bathrooms"`
	LandSize         float64         `json:"land_size"`
	BuildingSize     float64         `json:"building_size"`
	LandSizeUnit     string          `json:"land_size_unit"`
	BuildingSizeUnit string          `json:"building_size_unit"`
	Address          string          `json:"address"`
	Area             string          `json:"area"`
	City             string          `json:"city"`
	Features         []string        `json:"features"`
	Images           []fallbackImage `json:"images"`
	Agent            fallbackAgent   `json:"agent"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	IsFeatured       bool            `json:"is_featured"`
	IsVerified       bool            `json:"is_verified"`
	IsActive         bool            `json:"is_active"`
	ViewsCount       int             `json:"views_count"`
}

type fallbackArea struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	PropertyCount int    `json:"property_count"`
}

func init() {
	var data struct {
		Properties []fallbackProperty `json:"properties"`
		Areas      []fallbackArea     `json:"areas"`
	}
	if err := json.Unmarshal(fallbackJSON, &data); err != nil {
		panic(fmt.Sprintf("domain: broken embedded fallback data: %v", err))
	}

	for _, fp := range data.Properties {
		p := Property{
			ID:               fp.ID,
			Slug:             fp.Slug,
			Title:            fp.Title,
			Description:      fp.Description,
			PropertyType:     PropertyType(fp.PropertyType),
			ListingType:      ListingType(fp.ListingType),
			Status:           PropertyStatus(fp.Status),
			Price:            fp.Price,
			Currency:         fp.Currency,
			PricePeriod:      PricePeriod(fp.PricePeriod),
			Bedrooms:         fp.Bedrooms,
			Bathrooms:        fp.Bathrooms,
			LandSize:         fp.LandSize,
			BuildingSize:     fp.BuildingSize,
			LandSizeUnit:     fp.LandSizeUnit,
			BuildingSizeUnit: fp.BuildingSizeUnit,
			Address:          fp.Address,
			Area:             fp.Area,
			City:             fp.City,
			Features:         fp.Features,
			Agent: &Agent{
				ID:              fp.Agent.ID,
				Name:            fp.Agent.Name,
				Email:           fp.Agent.Email,
				Phone:           fp.Agent.Phone,
				PropertiesCount: fp.Agent.PropertiesCount,
			},
			IsFeatured: fp.IsFeatured,
			IsVerified: fp.IsVerified,
			IsActive:   fp.IsActive,
			ViewCount:  fp.ViewsCount,
			CreatedAt:  fp.CreatedAt,
			UpdatedAt:  fp.UpdatedAt,
		}
		for _, img := range fp.Images {
			p.Images = append(p.Images, PropertyImage(img))
		}
		fallbackProperties = append(fallbackProperties, p)
	}
	for _, fa := range data.Areas {
		fallbackAreas = append(fallbackAreas, Area{
			ID:            fa.ID,
			Name:          fa.Name,
			Slug:          fa.Slug,
			Description:   fa.Description,
			PropertyCount: fa.PropertyCount,
		})
	}
}

// FallbackProperties возвращает копию встроенного набора объектов.
func FallbackProperties() []Property {
	return append([]Property(nil), fallbackProperties...)
}

func FallbackAreas() []Area {
	return append([]Area(nil), fallbackAreas...)
}

func FallbackBySlug(slug string) (Property, bool) {
	for _, p := range fallbackProperties {
		if p.Slug == slug {
			return p, true
		}
	}
	return Property{}, false
}

// FallbackSimilar - первые n встроенных объектов.
func FallbackSimilar(n int) []Property {
	if n > len(fallbackProperties) {
		n = len(fallbackProperties)
	}
	return append([]Property(nil), fallbackProperties[:n]...)
}

// MatchesFilters применяет к объекту те же условия, что и сервер:
// точное совпадение типов, район без учета регистра, подстрока ключевого слова.
func MatchesFilters(p Property, f querycodec.PropertyFilters) bool {
	if f.ListingType != "" && string(p.ListingType) != f.ListingType {
		return false
	}
	if f.PropertyType != "" && string(p.PropertyType) != f.PropertyType {
		return false
	}
	if f.Area != "" && !strings.EqualFold(p.Area, f.Area) && !strings.EqualFold(areaSlug(p.Area), f.Area) {
		return false
	}
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		if !strings.Contains(strings.ToLower(p.Title), kw) &&
			!strings.Contains(strings.ToLower(p.Description), kw) &&
			!strings.Contains(strings.ToLower(p.Area), kw) {
			return false
		}
	}
	return true
}

// FilterFallback строит единственную страницу из встроенных данных.
func FilterFallback(f querycodec.PropertyFilters, perPage int) pagination.Page[Property] {
	items := make([]Property, 0, len(fallbackProperties))
	for _, p := range fallbackProperties {
		if MatchesFilters(p, f) {
			items = append(items, p)
		}
	}
	if perPage <= 0 {
		perPage = len(items)
	}
	return pagination.Page[Property]{
		Items:      items,
		Total:      len(items),
		Page:       1,
		PerPage:    perPage,
		TotalPages: 1,
	}
}

// "Nusa Dua" -> "nusa-dua": фильтр районов приходит в виде slug.
func areaSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
