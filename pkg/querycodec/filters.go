package querycodec

import "net/url"

// PropertyFilters - фильтры публичного каталога объектов.
type PropertyFilters struct {
	PropertyType string
	ListingType  string
	Area         string
	Keyword      string
	SortBy       string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     *int
	Bathrooms    *int
	MinLandSize  *float64
	MaxLandSize  *float64
	Page         *int
	PerPage      *int
	IsFeatured   bool
}

func (f PropertyFilters) Params() Params {
	p := Params{
		"property_type": f.PropertyType,
		"listing_type":  f.ListingType,
		"area":          f.Area,
		"keyword":       f.Keyword,
		"sort_by":       f.SortBy,
		"min_price":     f.MinPrice,
		"max_price":     f.MaxPrice,
		"bedrooms":      f.Bedrooms,
		"bathrooms":     f.Bathrooms,
		"min_land_size": f.MinLandSize,
		"max_land_size": f.MaxLandSize,
		"page":          f.Page,
		"per_page":      f.PerPage,
	}
	if f.IsFeatured {
		p["is_featured"] = "true"
	}
	return p
}

// Encode - сокращение для Encode(f.Params()).
func (f PropertyFilters) Encode() string {
	return Encode(f.Params())
}

// PageOr возвращает номер страницы (1 по умолчанию).
func (f PropertyFilters) PageOr() int {
	return positiveOr(f.Page, 1)
}

func DecodePropertyFilters(q url.Values) PropertyFilters {
	return PropertyFilters{
		PropertyType: q.Get("property_type"),
		ListingType:  q.Get("listing_type"),
		Area:         q.Get("area"),
		Keyword:      q.Get("keyword"),
		SortBy:       q.Get("sort_by"),
		MinPrice:     floatParam(q, "min_price"),
		MaxPrice:     floatParam(q, "max_price"),
		Bedrooms:     intParam(q, "bedrooms"),
		Bathrooms:    intParam(q, "bathrooms"),
		MinLandSize:  floatParam(q, "min_land_size"),
		MaxLandSize:  floatParam(q, "max_land_size"),
		Page:         intParam(q, "page"),
		PerPage:      intParam(q, "per_page"),
		IsFeatured:   flagParam(q, "is_featured"),
	}
}

// AdminPropertyFilters - фильтры таблицы объектов в админке.
type AdminPropertyFilters struct {
	Page         int
	PerPage      int
	Search       string
	PropertyType string
	ListingType  string
	Status       string
}

func (f AdminPropertyFilters) Params() Params {
	return Params{
		"page":          f.Page,
		"per_page":      f.PerPage,
		"search":        f.Search,
		"property_type": f.PropertyType,
		"listing_type":  f.ListingType,
		"status":        f.Status,
	}
}

func DecodeAdminPropertyFilters(q url.Values, defaultPerPage int) AdminPropertyFilters {
	return AdminPropertyFilters{
		Page:         positiveOr(intParam(q, "page"), 1),
		PerPage:      positiveOr(intParam(q, "per_page"), defaultPerPage),
		Search:       q.Get("search"),
		PropertyType: q.Get("property_type"),
		ListingType:  q.Get("listing_type"),
		Status:       q.Get("status"),
	}
}

type UserFilters struct {
	Page    int
	PerPage int
	Role    string
}

func (f UserFilters) Params() Params {
	return Params{"page": f.Page, "per_page": f.PerPage, "role": f.Role}
}

func DecodeUserFilters(q url.Values, defaultPerPage int) UserFilters {
	return UserFilters{
		Page:    positiveOr(intParam(q, "page"), 1),
		PerPage: positiveOr(intParam(q, "per_page"), defaultPerPage),
		Role:    q.Get("role"),
	}
}

type InquiryFilters struct {
	Page    int
	PerPage int
	Status  string
}

func (f InquiryFilters) Params() Params {
	return Params{"page": f.Page, "per_page": f.PerPage, "status": f.Status}
}

func DecodeInquiryFilters(q url.Values, defaultPerPage int) InquiryFilters {
	return InquiryFilters{
		Page:    positiveOr(intParam(q, "page"), 1),
		PerPage: positiveOr(intParam(q, "per_page"), defaultPerPage),
		Status:  q.Get("status"),
	}
}
