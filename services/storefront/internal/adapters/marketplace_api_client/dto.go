package marketplace_api_client

import (
	"encoding/json"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/format"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

type apiResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type paginationDTO struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// listEnvelope покрывает оба формата списка: {data: [...], pagination: {...}}
// и {success, data: {items, total, page, per_page, total_pages}}.
type listEnvelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *paginationDTO  `json:"pagination"`
}

type itemsPageDTO struct {
	Items []propertyDTO `json:"items"`
	paginationDTO
}

type imageDTO struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"is_primary"`
	Order     int    `json:"order"`
}

type agentDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	AvatarURL       string `json:"avatar_url"`
	Company         string `json:"company"`
	PropertiesCount int    `json:"properties_count"`
}

// propertyDTO: API отдает часть полей под двумя именами (view_count/views_count,
// land_size/land_size_sqm, building_size/building_size_sqm).
type propertyDTO struct {
	ID               string     `json:"id"`
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	PropertyType     string     `json:"property_type"`
	ListingType      string     `json:"listing_type"`
	Status           string     `json:"status"`
	Price            float64    `json:"price"`
	Currency         string     `json:"currency"`
	PricePeriod      string     `json:"price_period"`
	Bedrooms         int        `json:"bedrooms"`
	Bathrooms        int        `json:"bathrooms"`
	LandSize         *float64   `json:"land_size"`
	LandSizeSqm      *float64   `json:"land_size_sqm"`
	BuildingSize     *float64   `json:"building_size"`
	BuildingSizeSqm  *float64   `json:"building_size_sqm"`
	LandSizeUnit     string     `json:"land_size_unit"`
	BuildingSizeUnit string     `json:"building_size_unit"`
	Address          string     `json:"address"`
	Area             string     `json:"area"`
	City             string     `json:"city"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	Features         []string   `json:"features"`
	Images           []imageDTO `json:"images"`
	ThumbnailURL     string     `json:"thumbnail_url"`
	Agent            *agentDTO  `json:"agent"`
	IsFeatured       bool       `json:"is_featured"`
	IsVerified       bool       `json:"is_verified"`
	IsActive         *bool      `json:"is_active"`
	ViewsCount       *int       `json:"views_count"`
	ViewCount        *int       `json:"view_count"`
	CreatedAt        string     `json:"created_at"`
	UpdatedAt        string     `json:"updated_at"`
}

func (d propertyDTO) toDomain() domain.Property {
	p := domain.Property{
		ID:               d.ID,
		Slug:             d.Slug,
		Title:            d.Title,
		Description:      d.Description,
		PropertyType:     domain.PropertyType(d.PropertyType),
		ListingType:      domain.ListingType(d.ListingType),
		Status:           domain.PropertyStatus(d.Status),
		Price:            d.Price,
		Currency:         d.Currency,
		PricePeriod:      domain.PricePeriod(d.PricePeriod),
		Bedrooms:         d.Bedrooms,
		Bathrooms:        d.Bathrooms,
		LandSize:         firstFloat(d.LandSize, d.LandSizeSqm),
		BuildingSize:     firstFloat(d.BuildingSize, d.BuildingSizeSqm),
		LandSizeUnit:     d.LandSizeUnit,
		BuildingSizeUnit: d.BuildingSizeUnit,
		Address:          d.Address,
		Area:             d.Area,
		City:             d.City,
		Latitude:         d.Latitude,
		Longitude:        d.Longitude,
		Features:         d.Features,
		IsFeatured:       d.IsFeatured,
		IsVerified:       d.IsVerified,
		IsActive:         d.IsActive == nil || *d.IsActive,
		CreatedAt:        parseTime(d.CreatedAt),
		UpdatedAt:        parseTime(d.UpdatedAt),
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if d.ViewsCount != nil {
		p.ViewCount = *d.ViewsCount
	} else if d.ViewCount != nil {
		p.ViewCount = *d.ViewCount
	}
	for _, img := range d.Images {
		p.Images = append(p.Images, domain.PropertyImage(img))
	}
	if len(p.Images) == 0 && d.ThumbnailURL != "" {
		p.Images = []domain.PropertyImage{{URL: d.ThumbnailURL, Alt: d.Title, IsPrimary: true}}
	}
	if d.Agent != nil {
		a := domain.Agent(*d.Agent)
		p.Agent = &a
	}
	return p
}

func toDomainProperties(dtos []propertyDTO) []domain.Property {
	out := make([]domain.Property, len(dtos))
	for i, d := range dtos {
		out[i] = d.toDomain()
	}
	return out
}

type areaDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url"`
	PropertyCount int    `json:"property_count"`
}

// у старых записей районов slug может быть пустым
func (a areaDTO) toDomain() domain.Area {
	area := domain.Area(a)
	if area.Slug == "" {
		area.Slug = format.Slugify(a.Name)
	}
	return area
}

type userDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:        d.ID,
		Name:      d.Name,
		FullName:  d.FullName,
		Email:     d.Email,
		Phone:     d.Phone,
		AvatarURL: d.AvatarURL,
		Role:      domain.Role(d.Role),
		CreatedAt: parseTime(d.CreatedAt),
	}
}

type authDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type inquiryDTO struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

func (d inquiryDTO) toDomain() domain.Inquiry {
	return domain.Inquiry{
		ID:         d.ID,
		PropertyID: d.PropertyID,
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Message:    d.Message,
		Status:     domain.InquiryStatus(d.Status),
		CreatedAt:  parseTime(d.CreatedAt),
	}
}

func firstFloat(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
