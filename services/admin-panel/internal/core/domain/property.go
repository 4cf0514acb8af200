package domain

import (
	"slices"
	"strings"
	"time"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Property struct {
	ID           string
	Slug         string
	Title        string
	Description  string
	PropertyType string
	ListingType  string
	Status       string
	Price        float64
	Currency     string
	PricePeriod  string
	Bedrooms     int
	Bathrooms    int
	LandSize     float64
	BuildingSize float64
	Area         string
	Address      string
	Latitude     *float64
	Longitude    *float64
	Images       []string
	Features     []string
	IsFeatured   bool
	IsActive     bool
	ViewCount    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayStatus: в таблице статус объекта - это флаг активности.
func (p Property) DisplayStatus() string {
	if p.IsActive {
		return "active"
	}
	return "inactive"
}

var PropertyTypeOptions = []Option{
	{Value: "villa", Label: "Villa"},
	{Value: "house", Label: "House"},
	{Value: "apartment", Label: "Apartment"},
	{Value: "land", Label: "Land"},
	{Value: "commercial", Label: "Commercial"},
}

var ListingTypeOptions = []Option{
	{Value: "sale_freehold", Label: "Freehold"},
	{Value: "sale_leasehold", Label: "Leasehold"},
	{Value: "short_term_rent", Label: "Short-Term Rent"},
	{Value: "long_term_rent", Label: "Long-Term Rent"},
}

var PropertyStatusOptions = []Option{
	{Value: "active", Label: "Active"},
	{Value: "inactive", Label: "Inactive"},
}

var AreaOptions = []string{
	"Seminyak", "Canggu", "Ubud", "Kuta", "Jimbaran", "Nusa Dua",
	"Sanur", "Uluwatu", "Tabanan", "Lovina", "Amed", "Candidasa",
	"Denpasar", "Gianyar", "Karangasem", "Buleleng",
}

var FeatureOptions = []string{
	"Pool", "Garden", "Ocean View", "Furnished", "Air Conditioning",
	"Parking", "Security", "Wifi", "Kitchen", "Laundry", "Gym",
	"Beachfront", "Rice Paddy View", "Rooftop",
}

// PropertyForm - буфер формы объекта, поля 1:1 с полями сервера.
type PropertyForm struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	PropertyType string   `json:"property_type" validate:"required,oneof=villa house apartment land commercial"`
	ListingType  string   `json:"listing_type" validate:"required,oneof=sale_freehold sale_leasehold short_term_rent long_term_rent"`
	Price        float64  `json:"price" validate:"gt=0"`
	Currency     string   `json:"currency" validate:"required"`
	PricePeriod  string   `json:"price_period"`
	Bedrooms     int      `json:"bedrooms" validate:"min=0"`
	Bathrooms    int      `json:"bathrooms" validate:"min=0"`
	LandSize     float64  `json:"land_size" validate:"min=0"`
	BuildingSize float64  `json:"building_size" validate:"min=0"`
	Area         string   `json:"area" validate:"required"`
	Address      string   `json:"address"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Images       []string `json:"images"`
	Features     []string `json:"features"`
	IsFeatured   bool     `json:"is_featured"`
	IsActive     bool     `json:"is_active"`
}

func NewPropertyForm() PropertyForm {
	return PropertyForm{
		PropertyType: "villa",
		ListingType:  "sale_freehold",
		Currency:     "IDR",
		Images:       []string{},
		Features:     []string{},
		IsActive:     true,
	}
}

// FormFromProperty повторяет умолчания сервера: нет координат - 0, нет списков - пустые списки.
func FormFromProperty(p Property) PropertyForm {
	f := PropertyForm{
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		ListingType:  p.ListingType,
		Price:        p.Price,
		Currency:     p.Currency,
		PricePeriod:  p.PricePeriod,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		LandSize:     p.LandSize,
		BuildingSize: p.BuildingSize,
		Area:         p.Area,
		Address:      p.Address,
		Images:       slices.Clone(p.Images),
		Features:     slices.Clone(p.Features),
		IsFeatured:   p.IsFeatured,
		IsActive:     p.IsActive,
	}
	if p.Latitude != nil {
		f.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		f.Longitude = *p.Longitude
	}
	if f.Images == nil {
		f.Images = []string{}
	}
	if f.Features == nil {
		f.Features = []string{}
	}
	return f
}

// Операции над буфером формы.
const (
	FormAddImage      = "add_image"
	FormRemoveImage   = "remove_image"
	FormToggleFeature = "toggle_feature"
)

// AddImage игнорирует пустой URL.
func (f *PropertyForm) AddImage(url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	f.Images = append(slices.Clone(f.Images), url)
}

// RemoveImage игнорирует индекс за пределами списка.
func (f *PropertyForm) RemoveImage(index int) {
	if index < 0 || index >= len(f.Images) {
		return
	}
	f.Images = slices.Delete(slices.Clone(f.Images), index, index+1)
}

func (f *PropertyForm) ToggleFeature(feature string) {
	if i := slices.Index(f.Features, feature); i >= 0 {
		f.Features = slices.Delete(slices.Clone(f.Features), i, i+1)
		return
	}
	f.Features = append(slices.Clone(f.Features), feature)
}
