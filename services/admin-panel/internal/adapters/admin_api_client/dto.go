package admin_api_client

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

// pageDTO: строки приходят в items (ApiResponse<PaginatedResponse>) или в data (голый список).
type pageDTO[D any] struct {
	Items      []D `json:"items"`
	Data       []D `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

func (p pageDTO[D]) rows() []D {
	if p.Items != nil {
		return p.Items
	}
	return p.Data
}

type authDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (d userDTO) displayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.FullName
}

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:        d.ID,
		Name:      d.displayName(),
		Email:     d.Email,
		Phone:     d.Phone,
		AvatarURL: d.AvatarURL,
		Role:      domain.Role(d.Role),
		IsActive:  d.IsActive == nil || *d.IsActive,
		CreatedAt: parseTime(d.CreatedAt),
		UpdatedAt: parseTime(d.UpdatedAt),
	}
}

func (d userDTO) toAdminUser() domain.AdminUser {
	return domain.AdminUser{ID: d.ID, Email: d.Email, Name: d.displayName(), Role: domain.Role(d.Role)}
}

// imageList принимает и ["url", ...], и [{"url": ...}, ...].
type imageList []string

func (l *imageList) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*l = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return err
		}
		if obj.URL != "" {
			out = append(out, obj.URL)
		}
	}
	*l = out
	return nil
}

type propertyDTO struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PropertyType    string    `json:"property_type"`
	ListingType     string    `json:"listing_type"`
	Status          string    `json:"status"`
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	PricePeriod     string    `json:"price_period"`
	Bedrooms        int       `json:"bedrooms"`
	Bathrooms       int       `json:"bathrooms"`
	LandSize        *float64  `json:"land_size"`
	LandSizeSqm     *float64  `json:"land_size_sqm"`
	BuildingSize    *float64  `json:"building_size"`
	BuildingSizeSqm *float64  `json:"building_size_sqm"`
	Area            string    `json:"area"`
	Address         string    `json:"address"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	Images          imageList `json:"images"`
	Features        []string  `json:"features"`
	IsFeatured      bool      `json:"is_featured"`
	IsActive        *bool     `json:"is_active"`
	ViewCount       int       `json:"view_count"`
	CreatedAt       string    `json:"created_at"`
	UpdatedAt       string    `json:"updated_at"`
}

func (d propertyDTO) toDomain() domain.Property {
	return domain.Property{
		ID:           d.ID,
		Slug:         d.Slug,
		Title:        d.Title,
		Description:  d.Description,
		PropertyType: d.PropertyType,
		ListingType:  d.ListingType,
		Status:       d.Status,
		Price:        d.Price,
		Currency:     d.Currency,
		PricePeriod:  d.PricePeriod,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		LandSize:     firstFloat(d.LandSize, d.LandSizeSqm),
		BuildingSize: firstFloat(d.BuildingSize, d.BuildingSizeSqm),
		Area:         d.Area,
		Address:      d.Address,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
		Images:       []string(d.Images),
		Features:     d.Features,
		IsFeatured:   d.IsFeatured,
		IsActive:     d.IsActive == nil || *d.IsActive,
		ViewCount:    d.ViewCount,
		CreatedAt:    parseTime(d.CreatedAt),
		UpdatedAt:    parseTime(d.UpdatedAt),
	}
}

type inquiryDTO struct {
	ID            string `json:"id"`
	PropertyID    string `json:"property_id"`
	PropertyTitle string `json:"property_title"`
	PropertyImage string `json:"property_image"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Message       string `json:"message"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func (d inquiryDTO) toDomain() domain.Inquiry {
	return domain.Inquiry{
		ID:            d.ID,
		PropertyID:    d.PropertyID,
		PropertyTitle: d.PropertyTitle,
		PropertyImage: d.PropertyImage,
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		Message:       d.Message,
		Status:        domain.InquiryStatus(d.Status),
		CreatedAt:     parseTime(d.CreatedAt),
		UpdatedAt:     parseTime(d.UpdatedAt),
	}
}

// countList: {"villa": 3} или [{"property_type": "villa", "count": 3}] / [{"area": ..., "count": ...}].
type countList []domain.CountEntry

func (l *countList) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*l = nil
		return nil
	}
	var byKey map[string]int
	if err := json.Unmarshal(b, &byKey); err == nil {
		out := make([]domain.CountEntry, 0, len(byKey))
		for label, count := range byKey {
			out = append(out, domain.CountEntry{Label: label, Count: count})
		}
		domain.SortCounts(out)
		*l = out
		return nil
	}

	var rows []struct {
		PropertyType string `json:"property_type"`
		Area         string `json:"area"`
		Label        string `json:"label"`
		Count        int    `json:"count"`
	}
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	out := make([]domain.CountEntry, len(rows))
	for i, r := range rows {
		label := r.Label
		switch {
		case r.PropertyType != "":
			label = r.PropertyType
		case r.Area != "":
			label = r.Area
		}
		out[i] = domain.CountEntry{Label: label, Count: r.Count}
	}
	*l = out
	return nil
}

type dashboardDTO struct {
	TotalProperties  int           `json:"total_properties"`
	ActiveListings   *int          `json:"active_listings"`
	ActiveProperties *int          `json:"active_properties"`
	TotalUsers       int           `json:"total_users"`
	TotalInquiries   int           `json:"total_inquiries"`
	NewInquiries     int           `json:"new_inquiries"`
	TotalViews       int           `json:"total_views"`
	PropertiesByType countList     `json:"properties_by_type"`
	PropertiesByArea countList     `json:"properties_by_area"`
	RecentInquiries  []inquiryDTO  `json:"recent_inquiries"`
	RecentProperties []propertyDTO `json:"recent_properties"`
}

func (d dashboardDTO) toDomain() domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalProperties:  d.TotalProperties,
		TotalUsers:       d.TotalUsers,
		TotalInquiries:   d.TotalInquiries,
		NewInquiries:     d.NewInquiries,
		TotalViews:       d.TotalViews,
		PropertiesByType: []domain.CountEntry(d.PropertiesByType),
		PropertiesByArea: []domain.CountEntry(d.PropertiesByArea),
		RecentInquiries:  make([]domain.Inquiry, len(d.RecentInquiries)),
		RecentProperties: make([]domain.Property, len(d.RecentProperties)),
	}
	if d.ActiveListings != nil {
		stats.ActiveListings = *d.ActiveListings
	} else if d.ActiveProperties != nil {
		stats.ActiveListings = *d.ActiveProperties
	}
	for i, inq := range d.RecentInquiries {
		stats.RecentInquiries[i] = inq.toDomain()
	}
	for i, p := range d.RecentProperties {
		stats.RecentProperties[i] = p.toDomain()
	}
	return stats
}

// propertyPayload - тело POST/PUT /properties в именах полей admin API.
type propertyPayload struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	PropertyType    string   `json:"property_type"`
	ListingType     string   `json:"listing_type"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	PricePeriod     string   `json:"price_period,omitempty"`
	Bedrooms        int      `json:"bedrooms"`
	Bathrooms       int      `json:"bathrooms"`
	LandSizeSqm     float64  `json:"land_size_sqm"`
	BuildingSizeSqm float64  `json:"building_size_sqm"`
	Area            string   `json:"area"`
	Address         string   `json:"address"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Images          []string `json:"images"`
	Features        []string `json:"features"`
	IsFeatured      bool     `json:"is_featured"`
	IsActive        bool     `json:"is_active"`
	OwnerID         string   `json:"owner_id,omitempty"`
}

func newPropertyPayload(form domain.PropertyForm, ownerID string) propertyPayload {
	p := propertyPayload{
		Title:           form.Title,
		Description:     form.Description,
		PropertyType:    form.PropertyType,
		ListingType:     form.ListingType,
		Price:           form.Price,
		Currency:        form.Currency,
		PricePeriod:     form.PricePeriod,
		Bedrooms:        form.Bedrooms,
		Bathrooms:       form.Bathrooms,
		LandSizeSqm:     form.LandSize,
		BuildingSizeSqm: form.BuildingSize,
		Area:            form.Area,
		Address:         form.Address,
		Latitude:        form.Latitude,
		Longitude:       form.Longitude,
		Images:          form.Images,
		Features:        form.Features,
		IsFeatured:      form.IsFeatured,
		IsActive:        form.IsActive,
		OwnerID:         ownerID,
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}

type userPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
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
