package rest

import (
	"strings"
	"time"

	"github.com/dendisuhubdy/mybalivillas/pkg/badge"
	"github.com/dendisuhubdy/mybalivillas/pkg/format"
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/pagination"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/domain"
)

const messagePreviewLength = 80

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

// toPaginationResponse строит ссылки на страницы таблицы path с текущими фильтрами.
func toPaginationResponse(path string, c *pagination.Controls, params querycodec.Params) *PaginationResponse {
	if c == nil {
		return nil
	}
	link := func(page int) string {
		return querycodec.MergePageURL(path, params, querycodec.Params{"page": page})
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

// TableResponse - состояние таблицы админки: строки, навигация, ошибка с retry.
// SkeletonRows всегда равен per_page: столько строк-заглушек рисуется при загрузке.
type TableResponse[R any] struct {
	Query        string              `json:"query"`
	Rows         []R                 `json:"rows"`
	Total        int                 `json:"total"`
	Page         int                 `json:"page"`
	PerPage      int                 `json:"per_page"`
	TotalPages   int                 `json:"total_pages"`
	Pagination   *PaginationResponse `json:"pagination,omitempty"`
	SkeletonRows int                 `json:"skeleton_rows"`
	Fallback     bool                `json:"fallback,omitempty"`
	Error        string              `json:"error,omitempty"`
	Retry        bool                `json:"retry,omitempty"`
	Seq          uint64              `json:"seq"`
	Options      map[string]any      `json:"options,omitempty"`
}

func toTableResponse[T, R any](path string, params querycodec.Params, perPage int, st listing.State[T], conv func(T) R) TableResponse[R] {
	delete(params, "page")
	delete(params, "per_page")

	rows := make([]R, len(st.Page.Items))
	for i, item := range st.Page.Items {
		rows[i] = conv(item)
	}
	page := st.Page.Page
	if page == 0 {
		page = 1
	}
	return TableResponse[R]{
		Query:        querycodec.Encode(params),
		Rows:         rows,
		Total:        st.Page.Total,
		Page:         page,
		PerPage:      perPage,
		TotalPages:   st.Page.TotalPages,
		Pagination:   toPaginationResponse(path, st.Pagination, params),
		SkeletonRows: perPage,
		Fallback:     st.Fallback,
		Error:        st.Error,
		Retry:        st.Retry,
		Seq:          st.Seq,
	}
}

type PropertyRowResponse struct {
	ID                string      `json:"id"`
	Slug              string      `json:"slug"`
	Title             string      `json:"title"`
	ImageURL          string      `json:"image_url,omitempty"`
	PropertyType      string      `json:"property_type"`
	PropertyTypeLabel string      `json:"property_type_label"`
	ListingType       string      `json:"listing_type"`
	ListingTypeLabel  string      `json:"listing_type_label"`
	Price             float64     `json:"price"`
	PriceDisplay      string      `json:"price_display"`
	Area              string      `json:"area"`
	Status            badge.Badge `json:"status"`
	IsActive          bool        `json:"is_active"`
	IsFeatured        bool        `json:"is_featured"`
	ViewCount         int         `json:"view_count"`
	CreatedAt         time.Time   `json:"created_at"`
}

func toPropertyRow(p domain.Property) PropertyRowResponse {
	period := ""
	if strings.HasSuffix(p.ListingType, "_rent") {
		period = p.PricePeriod
	}
	row := PropertyRowResponse{
		ID:                p.ID,
		Slug:              p.Slug,
		Title:             p.Title,
		PropertyType:      p.PropertyType,
		PropertyTypeLabel: format.PropertyTypeLabel(p.PropertyType),
		ListingType:       p.ListingType,
		ListingTypeLabel:  format.ListingTypeLabel(p.ListingType),
		Price:             p.Price,
		PriceDisplay:      format.FormatPrice(p.Price, p.Currency, period),
		Area:              p.Area,
		Status:            badge.Resolve(badge.VariantDefault, p.DisplayStatus()),
		IsActive:          p.IsActive,
		IsFeatured:        p.IsFeatured,
		ViewCount:         p.ViewCount,
		CreatedAt:         p.CreatedAt,
	}
	if len(p.Images) > 0 {
		row.ImageURL = p.Images[0]
	}
	return row
}

func toPropertyTable(l *domain.PropertyList) TableResponse[PropertyRowResponse] {
	res := toTableResponse("/properties", l.Filters.Params(), l.Filters.PerPage, l.State, toPropertyRow)
	res.Options = map[string]any{
		"property_types": domain.PropertyTypeOptions,
		"listing_types":  domain.ListingTypeOptions,
		"statuses":       domain.PropertyStatusOptions,
	}
	return res
}

type UserRowResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	Role      string      `json:"role"`
	RoleLabel string      `json:"role_label"`
	Active    badge.Badge `json:"active"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	// Edit - буфер формы редактирования, без пароля.
	Edit domain.UserUpdate `json:"edit"`
}

func toUserRow(u domain.User) UserRowResponse {
	return UserRowResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		RoleLabel: format.Capitalize(strings.ReplaceAll(string(u.Role), "_", " ")),
		Active:    badge.Active(u.IsActive),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		Edit:      u.EditBuffer(),
	}
}

func toUserTable(l *domain.UserList) TableResponse[UserRowResponse] {
	res := toTableResponse("/users", l.Filters.Params(), l.Filters.PerPage, l.State, toUserRow)
	res.Options = map[string]any{"roles": domain.RoleOptions}
	return res
}

type InquiryRowResponse struct {
	ID             string      `json:"id"`
	PropertyID     string      `json:"property_id"`
	PropertyTitle  string      `json:"property_title,omitempty"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone,omitempty"`
	Message        string      `json:"message"`
	MessagePreview string      `json:"message_preview"`
	Status         string      `json:"status"`
	StatusBadge    badge.Badge `json:"status_badge"`
	CreatedAt      time.Time   `json:"created_at"`
}

func toInquiryRow(i domain.Inquiry) InquiryRowResponse {
	return InquiryRowResponse{
		ID:             i.ID,
		PropertyID:     i.PropertyID,
		PropertyTitle:  i.PropertyTitle,
		Name:           i.Name,
		Email:          i.Email,
		Phone:          i.Phone,
		Message:        i.Message,
		MessagePreview: format.Truncate(i.Message, messagePreviewLength),
		Status:         string(i.Status),
		StatusBadge:    badge.Resolve(badge.VariantInquiry, string(i.Status)),
		CreatedAt:      i.CreatedAt,
	}
}

func toInquiryTable(l *domain.InquiryList) TableResponse[InquiryRowResponse] {
	res := toTableResponse("/inquiries", l.Filters.Params(), l.Filters.PerPage, l.State, toInquiryRow)
	res.Options = map[string]any{"statuses": domain.InquiryStatusOptions}
	return res
}

type StatCardsResponse struct {
	TotalProperties int `json:"total_properties"`
	ActiveListings  int `json:"active_listings"`
	TotalUsers      int `json:"total_users"`
	TotalInquiries  int `json:"total_inquiries"`
	NewInquiries    int `json:"new_inquiries"`
	TotalViews      int `json:"total_views"`
}

type BarResponse struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Width float64 `json:"width"`
}

type DashboardResponse struct {
	Stats            StatCardsResponse     `json:"stats"`
	PropertiesByType []BarResponse         `json:"properties_by_type"`
	PropertiesByArea []BarResponse         `json:"properties_by_area"`
	RecentInquiries  []InquiryRowResponse  `json:"recent_inquiries"`
	RecentProperties []PropertyRowResponse `json:"recent_properties"`
}

func toBars(bars []domain.Bar, label func(string) string) []BarResponse {
	out := make([]BarResponse, len(bars))
	for i, b := range bars {
		out[i] = BarResponse{Label: label(b.Label), Count: b.Count, Width: b.Width}
	}
	return out
}

func toDashboardResponse(d *domain.Dashboard) DashboardResponse {
	s := d.Stats
	res := DashboardResponse{
		Stats: StatCardsResponse{
			TotalProperties: s.TotalProperties,
			ActiveListings:  s.ActiveListings,
			TotalUsers:      s.TotalUsers,
			TotalInquiries:  s.TotalInquiries,
			NewInquiries:    s.NewInquiries,
			TotalViews:      s.TotalViews,
		},
		PropertiesByType: toBars(d.TypeBars, format.PropertyTypeLabel),
		PropertiesByArea: toBars(d.AreaBars, func(s string) string { return s }),
		RecentInquiries:  make([]InquiryRowResponse, len(d.RecentInquiries)),
		RecentProperties: make([]PropertyRowResponse, len(d.RecentProperties)),
	}
	for i, inq := range d.RecentInquiries {
		res.RecentInquiries[i] = toInquiryRow(inq)
	}
	for i, p := range d.RecentProperties {
		res.RecentProperties[i] = toPropertyRow(p)
	}
	return res
}

// PropertyEditorResponse - буфер формы объекта и справочники для нее.
type PropertyEditorResponse struct {
	ID      string              `json:"id,omitempty"`
	Form    domain.PropertyForm `json:"form"`
	Options map[string]any      `json:"options"`
}

var editorOptions = map[string]any{
	"property_types": domain.PropertyTypeOptions,
	"listing_types":  domain.ListingTypeOptions,
	"areas":          domain.AreaOptions,
	"features":       domain.FeatureOptions,
}

func toPropertyEditor(id string, form domain.PropertyForm) PropertyEditorResponse {
	return PropertyEditorResponse{ID: id, Form: form, Options: editorOptions}
}

type AdminUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toAdminUserResponse(u domain.AdminUser) AdminUserResponse {
	return AdminUserResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}
