package update_day

import (
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	calendarModels "github.com/bedbees/BB-CalendarService/internal/service/calendar/models"
)

// UpdateDayRequest HTTP request model
// Отсутствующие поля не изменяются
type UpdateDayRequest struct {
	Date    string   `json:"date"` // "2025-10-15"
	Status  *string  `json:"status,omitempty"`
	Price   *float64 `json:"price,omitempty"`
	MinStay *int     `json:"minStay,omitempty"`
	Notes   *string  `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateDayRequest) ToServiceRequest(listingID, userID int64) (*calendarModels.UpdateDayRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &calendarModels.UpdateDayRequest{
		ListingID: listingID,
		UserID:    userID,
		Date:      date,
		Status:    r.Status,
		Price:     r.Price,
		MinStay:   r.MinStay,
		Notes:     r.Notes,
	}, nil
}
