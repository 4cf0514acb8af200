package domain

import (
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
)

type PropertyList struct {
	Filters querycodec.AdminPropertyFilters
	State   listing.State[Property]
}

type UserList struct {
	Filters querycodec.UserFilters
	State   listing.State[User]
}

type InquiryList struct {
	Filters querycodec.InquiryFilters
	State   listing.State[Inquiry]
}

// PropertyEditor - форма объекта и, для редактирования, его id.
type PropertyEditor struct {
	ID   string
	Form PropertyForm
}
