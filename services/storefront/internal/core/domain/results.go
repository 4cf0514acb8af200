package domain

import (
	"github.com/dendisuhubdy/mybalivillas/pkg/listing"
	"github.com/dendisuhubdy/mybalivillas/pkg/querycodec"
)

// PropertyListing - результат загрузки страницы каталога.
type PropertyListing struct {
	Filters querycodec.PropertyFilters
	State   listing.State[Property]
	// PerPage - размер страницы запроса; столько же строк-заглушек показывается при загрузке.
	PerPage int
}

// PropertyCollection - список без пагинации; Fallback означает встроенные данные.
type PropertyCollection struct {
	Items    []Property
	Fallback bool
}

type AreaCollection struct {
	Items    []Area
	Fallback bool
}

type PropertyDetail struct {
	Property Property
	Similar  []Property
	// Geohash ячейки карты; пусто, если координат нет.
	Geohash  string
	Fallback bool
}

type CurrentSession struct {
	User User
	// Role из токена, если он разбирается; иначе из сохраненного пользователя.
	Role Role
}
