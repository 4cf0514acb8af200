package rest

import (
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port"
	"github.com/dendisuhubdy/mybalivillas/services/storefront/internal/core/port/usecases_port"
)

// UseCases - все сценарии, которые обслуживает REST-слой витрины.
type UseCases struct {
	BrowseProperties usecases_port.BrowsePropertiesUseCasePort
	Featured         usecases_port.GetFeaturedPropertiesUseCasePort
	Areas            usecases_port.ListAreasUseCasePort
	PropertyDetail   usecases_port.GetPropertyDetailUseCasePort
	SubmitInquiry    usecases_port.SubmitInquiryUseCasePort
	Login            usecases_port.LoginUseCasePort
	Register         usecases_port.RegisterUseCasePort
	Logout           usecases_port.LogoutUseCasePort
	CurrentSession   usecases_port.CurrentSessionUseCasePort
	GetProfile       usecases_port.GetProfileUseCasePort
	UpdateProfile    usecases_port.UpdateProfileUseCasePort
	Saved            usecases_port.SavedPropertiesUseCasePort
	Wizard           usecases_port.ListPropertyWizardUseCasePort
}

type StorefrontHandler struct {
	uc     UseCases
	events port.SessionStorePort
}

func NewStorefrontHandler(uc UseCases, events port.SessionStorePort) *StorefrontHandler {
	return &StorefrontHandler{uc: uc, events: events}
}
