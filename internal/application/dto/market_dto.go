package dto

import "time"

// CreateMarketRequest entrada para crear un mercado. ManagerID opcional.
type CreateMarketRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	Address      string `json:"address" validate:"max=300"`
	Municipality string `json:"municipality" validate:"required,max=120"`
	ManagerID    string `json:"managerId" validate:"omitempty,uuid"`
}

// UpdateMarketRequest actualización parcial. ManagerID solo lo puede cambiar un ADMIN;
// "" lo desasigna.
type UpdateMarketRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	Address      *string `json:"address" validate:"omitempty,max=300"`
	Municipality *string `json:"municipality" validate:"omitempty,min=1,max=120"`
	ManagerID    *string `json:"managerId" validate:"omitempty,uuid"`
}

// MarketListRequest filtros del listado público.
type MarketListRequest struct {
	PageRequest
	Query string `query:"q" validate:"max=100"`
}

// ScheduleRequest un tramo de horario. DayOfWeek 0 = domingo.
type ScheduleRequest struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	OpenTime  string `json:"openTime" validate:"required,len=5"`
	CloseTime string `json:"closeTime" validate:"required,len=5"`
}

// ReplaceSchedulesRequest reemplaza todos los horarios del mercado.
type ReplaceSchedulesRequest struct {
	Schedules []ScheduleRequest `json:"schedules" validate:"max=50,dive"`
}

// ScheduleResponse salida de un horario.
type ScheduleResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// MarketResponse salida de un mercado. Schedules solo en el detalle.
type MarketResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Address      string             `json:"address"`
	Municipality string             `json:"municipality"`
	ManagerID    string             `json:"managerId,omitempty"`
	ImageURL     string             `json:"imageUrl,omitempty"`
	Schedules    []ScheduleResponse `json:"schedules,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// MarketListResponse listado paginado de mercados.
type MarketListResponse struct {
	Items []MarketResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
