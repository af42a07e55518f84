package update_day_rooms

import (
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	updateDayRooms "github.com/bedbees/BB-CalendarService/internal/usecase/update_day_rooms"
)

// RoomUpdateRequest частичное обновление инвентаря одного типа комнаты
type RoomUpdateRequest struct {
	RoomTypeID    int64    `json:"roomTypeId"`
	UnitsOpen     *int     `json:"unitsOpen,omitempty"`
	StopSell      *bool    `json:"stopSell,omitempty"`
	CTA           *bool    `json:"cta,omitempty"`
	CTD           *bool    `json:"ctd,omitempty"`
	OverridePrice *float64 `json:"overridePrice,omitempty"`
	Note          *string  `json:"note,omitempty"`
}

// UpdateDayRoomsRequest HTTP request model
type UpdateDayRoomsRequest struct {
	Date  string              `json:"date"` // "2025-10-15"
	Rooms []RoomUpdateRequest `json:"rooms"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateDayRoomsRequest) ToUseCaseRequest(listingID, userID int64) (*updateDayRooms.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	rooms := make([]updateDayRooms.RoomUpdate, 0, len(r.Rooms))
	for _, room := range r.Rooms {
		rooms = append(rooms, updateDayRooms.RoomUpdate{
			RoomTypeID:    room.RoomTypeID,
			UnitsOpen:     room.UnitsOpen,
			StopSell:      room.StopSell,
			CTA:           room.CTA,
			CTD:           room.CTD,
			OverridePrice: room.OverridePrice,
			Note:          room.Note,
		})
	}

	return &updateDayRooms.Request{
		ListingID: listingID,
		UserID:    userID,
		Date:      date,
		Rooms:     rooms,
	}, nil
}
