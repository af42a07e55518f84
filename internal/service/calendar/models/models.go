package models

import (
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
)

// Request модели

// GetCalendarRequest запрос календаря за период (границы включительно)
type GetCalendarRequest struct {
	ListingID int64
	UserID    int64
	From      time.Time
	To        time.Time
}

// UpdateDayRequest запрос на частичное обновление дня на уровне листинга
// nil-поля остаются без изменений, а не сбрасываются
type UpdateDayRequest struct {
	ListingID int64
	UserID    int64
	Date      time.Time

	Status  *string
	Price   *float64
	MinStay *int
	Notes   *string
}

// HasChanges возвращает true, если в запросе есть хотя бы одно поле
func (r *UpdateDayRequest) HasChanges() bool {
	return r.Status != nil || r.Price != nil || r.MinStay != nil || r.Notes != nil
}

// Response модели

// ListingInfo сводка листинга в ответе календаря
type ListingInfo struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Currency       string  `json:"currency"`
	DefaultPrice   float64 `json:"defaultPrice"`
	DefaultMinStay int     `json:"defaultMinStay"`
}

// RoomSnapshot срез инвентаря одного типа комнаты на дату
type RoomSnapshot struct {
	RoomTypeID    int64    `json:"roomTypeId"`
	RoomName      string   `json:"roomName"`
	BasePrice     float64  `json:"basePrice"`
	TotalUnits    int      `json:"totalUnits"`
	UnitsOpen     int      `json:"unitsOpen"`
	UnitsBooked   int      `json:"unitsBooked"`
	Available     int      `json:"available"`
	StopSell      bool     `json:"stopSell"`
	CTA           bool     `json:"cta"`
	CTD           bool     `json:"ctd"`
	OverridePrice *float64 `json:"overridePrice,omitempty"`
	Note          *string  `json:"note,omitempty"`
}

// DaySummary агрегаты по всем активным типам комнат на дату
type DaySummary struct {
	TotalRooms     int `json:"totalRooms"`
	AvailableRooms int `json:"availableRooms"`
	TotalCapacity  int `json:"totalCapacity"`
	TotalAvailable int `json:"totalAvailable"`
	StopSellCount  int `json:"stopSellCount"`
}

// DayProjection проекция одного дня календаря
type DayProjection struct {
	Date            string         `json:"date"` // "2025-10-15"
	Status          string         `json:"status"`
	EffectiveStatus string         `json:"effectiveStatus"`
	Price           *float64       `json:"price,omitempty"`
	MinStay         *int           `json:"minStay,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
	Summary         DaySummary     `json:"summary"`
	Rooms           []RoomSnapshot `json:"rooms"`
}

// RangeStats статистика по запрошенному периоду
type RangeStats struct {
	TotalDays   int `json:"totalDays"`
	OpenDays    int `json:"openDays"`
	BlockedDays int `json:"blockedDays"`
}

// CalendarResponse ответ с календарем листинга за период
type CalendarResponse struct {
	Listing  ListingInfo      `json:"listing"`
	Calendar []*DayProjection `json:"calendar"`
	Stats    RangeStats       `json:"stats"`
}

// FromDomainListing конвертирует листинг в сводку для ответа
func FromDomainListing(listing *domain.Listing) ListingInfo {
	return ListingInfo{
		ID:             listing.ID,
		Name:           listing.Name,
		Currency:       listing.Currency,
		DefaultPrice:   listing.DefaultPrice,
		DefaultMinStay: listing.DefaultMinStay,
	}
}
