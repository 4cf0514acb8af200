package domain

import (
	"strconv"
	"strings"
)

var WizardSteps = []string{"Basics", "Details", "Location", "Images & Features"}

type WizardAction string

const (
	WizardNext   WizardAction = "next"
	WizardBack   WizardAction = "back"
	WizardSubmit WizardAction = "submit"
	// WizardReset - "List Another Property" после успешной отправки.
	WizardReset WizardAction = "reset"
)

// WizardForm - буферы полей формы в том виде, в каком их ввел пользователь.
type WizardForm struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	PropertyType    string `json:"property_type"`
	ListingType     string `json:"listing_type"`
	Price           string `json:"price"`
	Currency        string `json:"currency"`
	PricePeriod     string `json:"price_period"`
	Bedrooms        string `json:"bedrooms"`
	Bathrooms       string `json:"bathrooms"`
	LandSizeSqm     string `json:"land_size_sqm"`
	BuildingSizeSqm string `json:"building_size_sqm"`
	YearBuilt       string `json:"year_built"`
	Area            string `json:"area"`
	Address         string `json:"address"`
	ThumbnailURL    string `json:"thumbnail_url"`
	Features        string `json:"features"`
}

func NewWizardForm() WizardForm {
	return WizardForm{
		PropertyType: string(PropertyTypeVilla),
		ListingType:  string(ListingSaleFreehold),
		Currency:     "USD",
		Area:         "Seminyak",
	}
}

type WizardState struct {
	Step    int        `json:"step"`
	Success bool       `json:"success"`
	Error   string     `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
	Form    WizardForm `json:"form"`
}

func (s WizardState) LastStep() bool {
	return s.Step == len(WizardSteps)-1
}

// Next: с шага 0 переход возможен только при заполненных title и price.
func (s WizardState) Next() WizardState {
	s.Error = ""
	if s.Step == 0 {
		if strings.TrimSpace(s.Form.Title) == "" {
			s.Error = "Title is required"
			return s
		}
		if s.Form.Price == "" {
			s.Error = "Price is required"
			return s
		}
	}
	s.Step = min(s.Step+1, len(WizardSteps)-1)
	return s
}

// Back никогда не валидирует.
func (s WizardState) Back() WizardState {
	s.Error = ""
	s.Step = max(s.Step-1, 0)
	return s
}

// Reset очищает только title, description и price; тип, район и валюта остаются.
func (s WizardState) Reset() WizardState {
	s.Step = 0
	s.Success = false
	s.Error = ""
	s.Message = ""
	s.Form.Title = ""
	s.Form.Description = ""
	s.Form.Price = ""
	return s
}

// Succeeded переводит мастер в конечное состояние "успех" (это не шаг N).
func (s WizardState) Succeeded(role Role) WizardState {
	s.Success = true
	s.Error = ""
	s.Message = SubmissionMessage(role)
	return s
}

func SubmissionMessage(role Role) string {
	if role == RoleAgent || role == RoleAdmin || role == RoleSuperAdmin {
		return "Your property listing is now live and visible to buyers."
	}
	return "Your listing has been submitted for review. Our team will activate it shortly."
}

// PropertySubmission - тело запроса на создание объявления.
type PropertySubmission struct {
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	PropertyType    string   `json:"property_type"`
	ListingType     string   `json:"listing_type"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	PricePeriod     string   `json:"price_period,omitempty"`
	Bedrooms        *int     `json:"bedrooms,omitempty"`
	Bathrooms       *int     `json:"bathrooms,omitempty"`
	LandSizeSqm     *float64 `json:"land_size_sqm,omitempty"`
	BuildingSizeSqm *float64 `json:"building_size_sqm,omitempty"`
	YearBuilt       *int     `json:"year_built,omitempty"`
	Area            string   `json:"area"`
	Address         string   `json:"address,omitempty"`
	ThumbnailURL    string   `json:"thumbnail_url,omitempty"`
	Features        []string `json:"features,omitempty"`
}

// Submission собирает тело запроса из буферов. Период цены отправляется только для аренды.
func (f WizardForm) Submission() PropertySubmission {
	price, _ := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	sub := PropertySubmission{
		Title:           f.Title,
		Description:     f.Description,
		PropertyType:    f.PropertyType,
		ListingType:     f.ListingType,
		Price:           price,
		Currency:        f.Currency,
		Bedrooms:        optionalInt(f.Bedrooms),
		Bathrooms:       optionalInt(f.Bathrooms),
		LandSizeSqm:     optionalFloat(f.LandSizeSqm),
		BuildingSizeSqm: optionalFloat(f.BuildingSizeSqm),
		YearBuilt:       optionalInt(f.YearBuilt),
		Area:            f.Area,
		Address:         f.Address,
		ThumbnailURL:    f.ThumbnailURL,
		Features:        SplitFeatures(f.Features),
	}
	if ListingType(f.ListingType).IsRental() {
		sub.PricePeriod = f.PricePeriod
	}
	return sub
}

// SplitFeatures: "Pool, , Garden " -> ["Pool", "Garden"].
func SplitFeatures(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func optionalInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func optionalFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
