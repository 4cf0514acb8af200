package rest

import (
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port"
	"github.com/dendisuhubdy/mybalivillas/services/admin-panel/internal/core/port/usecases_port"
)

type UseCases struct {
	Login          usecases_port.LoginUseCasePort
	Logout         usecases_port.LogoutUseCasePort
	CurrentSession usecases_port.CurrentSessionUseCasePort
	Dashboard      usecases_port.DashboardUseCasePort
	Properties     usecases_port.PropertiesUseCasePort
	Users          usecases_port.UsersUseCasePort
	Inquiries      usecases_port.InquiriesUseCasePort
}

type AdminHandler struct {
	uc      UseCases
	events  port.SessionStorePort
	perPage int
}

func NewAdminHandler(uc UseCases, events port.SessionStorePort, perPage int) *AdminHandler {
	return &AdminHandler{uc: uc, events: events, perPage: perPage}
}
