package bulk_update

import (
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
)

// Updates набор полей, применяемых к каждой дате периода
// nil-поля остаются без изменений; поля дня пишутся в строку доступности,
// поля комнат - в инвентарь каждого активного типа комнаты
type Updates struct {
	// Поля дня
	Status  *domain.DayStatus
	Price   *float64
	MinStay *int
	Notes   *string

	// Поля комнат
	UnitsOpen     *UnitsExpr
	StopSell      *bool
	CTA           *bool
	CTD           *bool
	OverridePrice *PriceExpr
	Note          *string
}

// HasDayFields возвращает true, если заданы поля уровня дня
func (u *Updates) HasDayFields() bool {
	return u.Status != nil || u.Price != nil || u.MinStay != nil || u.Notes != nil
}

// HasRoomFields возвращает true, если заданы поля уровня комнат
func (u *Updates) HasRoomFields() bool {
	return u.UnitsOpen != nil || u.StopSell != nil || u.CTA != nil || u.CTD != nil ||
		u.OverridePrice != nil || u.Note != nil
}

// HasChanges возвращает true, если задано хотя бы одно поле
func (u *Updates) HasChanges() bool {
	return u.HasDayFields() || u.HasRoomFields()
}

// Request модель запроса пакетного обновления календаря
// Weekdays фильтрует даты периода: 0=Пн .. 6=Вс, пустой список - все дни
type Request struct {
	ListingID  int64
	UserID     int64
	From       time.Time
	To         time.Time
	Weekdays   []int
	Updates    Updates
	UpdateType string
	Notes      string
}

// ItemError ошибка применения обновления к одной паре (дата, тип комнаты)
type ItemError struct {
	Date       string `json:"date"`
	RoomTypeID int64  `json:"roomTypeId,omitempty"`
	Error      string `json:"error"`
}

// Response результат пакетного обновления: затронутые даты и поэлементные
// отказы; отказ одной пары (дата, тип комнаты) не откатывает остальные
type Response struct {
	UpdatedDates []string    `json:"updatedDates"`
	Errors       []ItemError `json:"errors"`
}

// HasErrors возвращает true, если хотя бы один элемент был отклонен
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}
