package domain

import "time"

type PropertyType string

const (
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"
)

type ListingType string

const (
	ListingSaleFreehold  ListingType = "sale_freehold"
	ListingSaleLeasehold ListingType = "sale_leasehold"
	ListingShortTermRent ListingType = "short_term_rent"
	ListingLongTermRent  ListingType = "long_term_rent"
)

// IsRental: период цены имеет смысл только для аренды.
func (l ListingType) IsRental() bool {
	return l == ListingShortTermRent || l == ListingLongTermRent
}

type PricePeriod string

const (
	PeriodTotal    PricePeriod = "total"
	PeriodPerYear  PricePeriod = "per_year"
	PeriodPerMonth PricePeriod = "per_month"
	PeriodPerWeek  PricePeriod = "per_week"
	PeriodPerDay   PricePeriod = "per_day"
)

type PropertyStatus string

const (
	StatusActive  PropertyStatus = "active"
	StatusSold    PropertyStatus = "sold"
	StatusRented  PropertyStatus = "rented"
	StatusPending PropertyStatus = "pending"
	StatusDraft   PropertyStatus = "draft"
)

type PropertyImage struct {
	ID        string
	URL       string
	Alt       string
	IsPrimary bool
	Order     int
}

type Agent struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	AvatarURL       string
	Company         string
	PropertiesCount int
}

type Property struct {
	ID               string
	Slug             string
	Title            string
	Description      string
	PropertyType     PropertyType
	ListingType      ListingType
	Status           PropertyStatus
	Price            float64
	Currency         string
	PricePeriod      PricePeriod
	Bedrooms         int
	Bathrooms        int
	LandSize         float64
	BuildingSize     float64
	LandSizeUnit     string
	BuildingSizeUnit string
	Address          string
	Area             string
	City             string
	Latitude         *float64
	Longitude        *float64
	Features         []string
	Images           []PropertyImage
	Agent            *Agent
	IsFeatured       bool
	IsVerified       bool
	IsActive         bool
	ViewCount        int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PrimaryImageURL: картинка с is_primary, иначе первая; пустая строка, если картинок нет.
func (p Property) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary && img.URL != "" {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

type Area struct {
	ID            string
	Name          string
	Slug          string
	Description   string
	ImageURL      string
	PropertyCount int
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var SortOptions = []Option{
	{Value: "newest", Label: "Newest First"},
	{Value: "price_asc", Label: "Price: Low to High"},
	{Value: "price_desc", Label: "Price: High to Low"},
	{Value: "popular", Label: "Most Popular"},
}

var BedroomOptions = []Option{
	{Value: "", Label: "Any"},
	{Value: "1", Label: "1+"},
	{Value: "2", Label: "2+"},
	{Value: "3", Label: "3+"},
	{Value: "4", Label: "4+"},
	{Value: "5", Label: "5+"},
}

var AreaOptions = []Option{
	{Value: "", Label: "All Areas"},
	{Value: "seminyak", Label: "Seminyak"},
	{Value: "canggu", Label: "Canggu"},
	{Value: "ubud", Label: "Ubud"},
	{Value: "uluwatu", Label: "Uluwatu"},
	{Value: "sanur", Label: "Sanur"},
	{Value: "nusa-dua", Label: "Nusa Dua"},
	{Value: "jimbaran", Label: "Jimbaran"},
	{Value: "kuta", Label: "Kuta"},
}
