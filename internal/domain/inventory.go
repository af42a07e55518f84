package domain

import "time"

// DayRoomInventory represents the per-room-type per-date inventory ledger:
// units offered for sale, units already booked, sale restrictions and a
// price override. This is the system of record for sellable capacity.
// Отсутствие записи на (room_type, date) означает "все юниты открыты по
// базовой цене", см. DefaultDayRoomInventory.
type DayRoomInventory struct {
	ID         int64
	ListingID  int64
	RoomTypeID int64
	Date       time.Time

	// 0 <= UnitsOpen <= RoomType.TotalUnits
	UnitsOpen int
	// Пишется только системой бронирования, здесь read-mostly
	UnitsBooked int

	// StopSell обнуляет доступность независимо от открытых юнитов
	StopSell bool
	// CTA/CTD — ограничения заезда/выезда, проходят насквозь без
	// интерпретации: их семантикой владеет движок бронирования
	CTA bool
	CTD bool

	OverridePrice *float64
	Note          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultDayRoomInventory возвращает запись, подразумеваемую при отсутствии
// строки в БД: все юниты типа открыты, ничего не забронировано
func DefaultDayRoomInventory(listingID int64, roomType *RoomType, date time.Time) *DayRoomInventory {
	return &DayRoomInventory{
		ListingID:  listingID,
		RoomTypeID: roomType.ID,
		Date:       date,
		UnitsOpen:  roomType.TotalUnits,
	}
}

// Available returns the number of sellable units:
// 0 if stop-sell is set, else max(0, units_open - units_booked)
func (i *DayRoomInventory) Available() int {
	if i.StopSell {
		return 0
	}
	available := i.UnitsOpen - i.UnitsBooked
	if available < 0 {
		return 0
	}
	return available
}

// EffectivePrice returns the override price or the room type base price
func (i *DayRoomInventory) EffectivePrice(roomType *RoomType) float64 {
	if i.OverridePrice != nil {
		return *i.OverridePrice
	}
	return roomType.BasePrice
}
