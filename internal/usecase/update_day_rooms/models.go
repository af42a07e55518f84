package update_day_rooms

import (
	"time"

	calendarModels "github.com/bedbees/BB-CalendarService/internal/service/calendar/models"
)

// RoomUpdate частичное обновление инвентаря одного типа комнаты
// nil-поля остаются без изменений
type RoomUpdate struct {
	RoomTypeID    int64
	UnitsOpen     *int
	StopSell      *bool
	CTA           *bool
	CTD           *bool
	OverridePrice *float64
	Note          *string
}

// Request модель запроса на обновление инвентаря комнат на дату
type Request struct {
	ListingID int64
	UserID    int64
	Date      time.Time
	Rooms     []RoomUpdate
}

// ItemError ошибка валидации одного элемента запроса
type ItemError struct {
	RoomTypeID int64  `json:"roomTypeId"`
	Error      string `json:"error"`
}

// Response результат обновления: успехи и отказы учитываются поэлементно,
// прошедшие валидацию элементы применяются даже при наличии отказов
type Response struct {
	Updated []int64     `json:"updated"`
	Errors  []ItemError `json:"errors"`

	Day *calendarModels.DayProjection `json:"day"`
}

// HasErrors возвращает true, если хотя бы один элемент был отклонен
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}
