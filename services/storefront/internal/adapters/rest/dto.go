package rest

import (
	"strings"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/badge"
	"github.com/dendisuhubdy/mybalivillas/pkg/format"
	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/domain"
)

const propertiesPath = "/properties"

type ImageResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"is_primary"`
	Order     int    `json:"order"`
}

type AgentResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	Company         string `json:"company,omitempty"`
	PropertiesCount int    `json:"properties_count"`
}

// PropertyCardResponse - объект в списке с уже отформатированными полями.
type PropertyCardResponse struct {
	ID                string      `json:"id"`
	Slug              string      `json:"slug"`
	Title             string      `json:"title"`
	PropertyType      string      `json:"property_type"`
	PropertyTypeLabel string      `json:"property_type_label"`
	ListingType       string      `json:"listing_type"`
	ListingTypeLabel  string      `json:"listing_type_label"`
	Status            badge.Badge `json:"status"`
	Price             float64     `json:"price"`
	Currency          string      `json:"currency"`
	PricePeriod       string      `json:"price_period,omitempty"`
	PriceDisplay      string      `json:"price_display"`
	Bedrooms          int         `json:"bedrooms"`
	Bathrooms         int         `json:"bathrooms"`
	LandSizeDisplay   string      `json:"land_size_display,omitempty"`
	BuildingDisplay   string      `json:"building_size_display,omitempty"`
	Area              string      `json:"area"`
	ImageURL          string      `json:"image_url,omitempty"`
	IsFeatured        bool        `json:"is_featured"`
	IsVerified        bool        `json:"is_verified"`
	ViewCount         int         `json:"view_count"`
}

func toPropertyCard(p domain.Property) PropertyCardResponse {
	card := PropertyCardResponse{
		ID:                p.ID,
		Slug:              p.Slug,
		Title:             p.Title,
		PropertyType:      string(p.PropertyType),
		PropertyTypeLabel: format.PropertyTypeLabel(string(p.PropertyType)),
		ListingType:       string(p.ListingType),
		ListingTypeLabel:  format.ListingTypeLabel(string(p.ListingType)),
		Status:            badge.Resolve(badge.VariantDefault, string(p.Status)),
		Price:             p.Price,
		Currency:          p.Currency,
		Bedrooms:          p.Bedrooms,
		Bathrooms:         p.Bathrooms,
		Area:              p.Area,
		ImageURL:          p.PrimaryImageURL(),
		IsFeatured:        p.IsFeatured,
		IsVerified:        p.IsVerified,
		ViewCount:         p.ViewCount,
	}
	// период цены показывается только для аренды
	if p.ListingType.IsRental() {
		card.PricePeriod = string(p.PricePeriod)
	}
	card.PriceDisplay = format.FormatPrice(p.Price, p.Currency, card.PricePeriod)
	if p.LandSize > 0 {
		card.LandSizeDisplay = format.FormatArea(p.LandSize, p.LandSizeUnit)
	}
	if p.BuildingSize > 0 {
		card.BuildingDisplay = format.FormatArea(p.BuildingSize, p.BuildingSizeUnit)
	}
	return card
}

func toPropertyCards(items []domain.Property) []PropertyCardResponse {
	out := make([]PropertyCardResponse, len(items))
	for i, p := range items {
		out[i] = toPropertyCard(p)
	}
	return out
}

type PropertyDetailResponse struct {
	PropertyCardResponse
	Description string          `json:"description"`
	Address     string          `json:"address,omitempty"`
	City        string          `json:"city,omitempty"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Longitude   *float64        `json:"longitude,omitempty"`
	Geohash     string          `json:"geohash,omitempty"`
	Features    []string        `json:"features"`
	Images      []ImageResponse `json:"images"`
	Agent       *AgentResponse  `json:"agent,omitempty"`
	// InquiryMessage - текст формы заявки по умолчанию.
	InquiryMessage string    `json:"inquiry_message"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PropertyDetailPageResponse struct {
	Property PropertyDetailResponse `json:"property"`
	Similar  []PropertyCardResponse `json:"similar"`
	Fallback bool                   `json:"fallback"`
}

func toPropertyDetailPage(d *domain.PropertyDetail) PropertyDetailPageResponse {
	p := d.Property
	res := PropertyDetailResponse{
		PropertyCardResponse: toPropertyCard(p),
		Description:          p.Description,
		Address:              p.Address,
		City:                 p.City,
		Latitude:             p.Latitude,
		Longitude:            p.Longitude,
		Geohash:              d.Geohash,
		Features:             p.Features,
		Images:               make([]ImageResponse, len(p.Images)),
		InquiryMessage:       domain.DefaultInquiryMessage(p.Title),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
	if res.Features == nil {
		res.Features = []string{}
	}
	for i, img := range p.Images {
		res.Images[i] = ImageResponse(img)
	}
	if p.Agent != nil {
		a := AgentResponse(*p.Agent)
		res.Agent = &a
	}
	return PropertyDetailPageResponse{
		Property: res,
		Similar:  toPropertyCards(d.Similar),
		Fallback: d.Fallback,
	}
}

// PageLinkResponse - элемент навигации со ссылкой на страницу (пусто для "...").
type PageLinkResponse struct {
	pagination.Indicator
	URL string `json:"url,omitempty"`
}

type PaginationResponse struct {
	Items        []PageLinkResponse `json:"items"`
	CurrentPage  int                `json:"current_page"`
	TotalPages   int                `json:"total_pages"`
	PrevDisabled bool               `json:"prev_disabled"`
	NextDisabled bool               `json:"next_disabled"`
	PrevURL      string             `json:"prev_url,omitempty"`
	NextURL      string             `json:"next_url,omitempty"`
	Label        string             `json:"label"`
}

func toPaginationResponse(c *pagination.Controls, params querycodec.Params) *PaginationResponse {
	if c == nil {
		return nil
	}
	link := func(page int) string {
		return querycodec.MergePageURL(propertiesPath, params, querycodec.Params{"page": page})
	}
	res := &PaginationResponse{
		Items:        make([]PageLinkResponse, len(c.Items)),
		CurrentPage:  c.CurrentPage,
		TotalPages:   c.TotalPages,
		PrevDisabled: c.PrevDisabled,
		NextDisabled: c.NextDisabled,
		Label:        c.Label,
	}
	for i, it := range c.Items {
		res.Items[i] = PageLinkResponse{Indicator: it}
		if !it.Ellipsis {
			res.Items[i].URL = link(it.Page)
		}
	}
	if !c.PrevDisabled {
		res.PrevURL = link(c.CurrentPage - 1)
	}
	if !c.NextDisabled {
		res.NextURL = link(c.CurrentPage + 1)
	}
	return res
}

type ListingOptionsResponse struct {
	Sort     []domain.Option `json:"sort"`
	Bedrooms []domain.Option `json:"bedrooms"`
	Areas    []domain.Option `json:"areas"`
}

var listingOptions = ListingOptionsResponse{
	Sort:     domain.SortOptions,
	Bedrooms: domain.BedroomOptions,
	Areas:    domain.AreaOptions,
}

type PropertyListingResponse struct {
	Query        string                 `json:"query"`
	Properties   []PropertyCardResponse `json:"properties"`
	Total        int                    `json:"total"`
	Page         int                    `json:"page"`
	PerPage      int                    `json:"per_page"`
	TotalPages   int                    `json:"total_pages"`
	Pagination   *PaginationResponse    `json:"pagination,omitempty"`
	SkeletonRows int                    `json:"skeleton_rows"`
	Fallback     bool                   `json:"fallback"`
	Error        string                 `json:"error,omitempty"`
	Retry        bool                   `json:"retry,omitempty"`
	Seq          uint64                 `json:"seq"`
	Options      ListingOptionsResponse `json:"options"`
}

func toPropertyListingResponse(l *domain.PropertyListing) PropertyListingResponse {
	// ссылки пагинации не переносят page/per_page текущего запроса
	params := l.Filters.Params()
	delete(params, "page")
	delete(params, "per_page")

	st := l.State
	return PropertyListingResponse{
		Query:        querycodec.Encode(params),
		Properties:   toPropertyCards(st.Page.Items),
		Total:        st.Page.Total,
		Page:         st.Page.Page,
		PerPage:      st.Page.PerPage,
		TotalPages:   st.Page.TotalPages,
		Pagination:   toPaginationResponse(st.Pagination, params),
		SkeletonRows: l.PerPage,
		Fallback:     st.Fallback,
		Error:        st.Error,
		Retry:        st.Retry,
		Seq:          st.Seq,
		Options:      listingOptions,
	}
}

type CollectionResponse[T any] struct {
	Data     []T  `json:"data"`
	Fallback bool `json:"fallback"`
}

type AreaResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url,omitempty"`
	PropertyCount int    `json:"property_count"`
	URL           string `json:"url"`
}

func toAreaResponses(areas []domain.Area) []AreaResponse {
	out := make([]AreaResponse, len(areas))
	for i, a := range areas {
		out[i] = AreaResponse{
			ID:            a.ID,
			Name:          a.Name,
			Slug:          a.Slug,
			Description:   a.Description,
			ImageURL:      a.ImageURL,
			PropertyCount: a.PropertyCount,
			URL:           propertiesPath + querycodec.WithPrefix(querycodec.Params{"area": a.Slug}),
		}
	}
	return out
}

type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	Role       string `json:"role"`
	RoleBadge  string `json:"role_badge"`
	Initials   string `json:"initials"`
	CanPublish bool   `json:"can_publish"`
}

var roleBadgeClasses = map[domain.Role]string{
	domain.RoleAdmin:      "bg-red-100 text-red-700",
	domain.RoleSuperAdmin: "bg-red-100 text-red-700",
	domain.RoleAgent:      "bg-blue-100 text-blue-700",
	domain.RoleUser:       "bg-gray-100 text-gray-700",
}

func toUserResponse(u domain.User, role domain.Role) UserResponse {
	if role == "" {
		role = u.Role
	}
	class, ok := roleBadgeClasses[role]
	if !ok {
		class = badge.NeutralClass
	}
	name := u.DisplayName()
	return UserResponse{
		ID:         u.ID,
		Name:       name,
		Email:      u.Email,
		Phone:      u.Phone,
		AvatarURL:  u.AvatarURL,
		Role:       string(role),
		RoleBadge:  class,
		Initials:   initials(name),
		CanPublish: role.CanPublishDirectly(),
	}
}

// initials: "Sarah Johnson" -> "SJ", не больше двух букв.
func initials(name string) string {
	var out []rune
	inWord := false
	for _, r := range name {
		if r == ' ' {
			inWord = false
			continue
		}
		if !inWord {
			out = append(out, r)
			inWord = true
		}
	}
	if len(out) > 2 {
		out = out[:2]
	}
	return strings.ToUpper(string(out))
}

type InquiryRequest struct {
	domain.InquiryForm
	PropertyTitle string `json:"property_title,omitempty"`
}

type InquiryResponse struct {
	ID         string      `json:"id"`
	PropertyID string      `json:"property_id"`
	Status     badge.Badge `json:"status"`
	Message    string      `json:"message"`
}

type WizardRequest struct {
	Action domain.WizardAction `json:"action"`
	State  *domain.WizardState `json:"state,omitempty"`
}

type WizardResponse struct {
	Steps []string           `json:"steps"`
	State domain.WizardState `json:"state"`
}
