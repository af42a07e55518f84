package update_day_rooms

import (
	"fmt"

	"github.com/bedbees/BB-CalendarService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ListingID <= 0 {
		return fmt.Errorf("%w: listingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Rooms) == 0 {
		return fmt.Errorf("%w: rooms are required", ErrInvalidInput)
	}

	for _, room := range req.Rooms {
		if room.RoomTypeID <= 0 {
			return fmt.Errorf("%w: room_type_id is required for each room update", ErrInvalidInput)
		}
	}

	return nil
}

// validateRoomUpdate проверяет один элемент против текущего состояния строки
// инвентаря. Порядок проверок фиксирован: диапазон units_open, затем
// инвариант безопасности бронирований, затем цена.
// Возвращает текст ошибки для отчета, пустую строку при успехе.
func validateRoomUpdate(item RoomUpdate, roomType *domain.RoomType, inv *domain.DayRoomInventory) string {
	if item.UnitsOpen != nil {
		if *item.UnitsOpen < 0 || *item.UnitsOpen > roomType.TotalUnits {
			return fmt.Sprintf("units_open must be between 0 and %d", roomType.TotalUnits)
		}

		// Инвариант безопасности бронирований: открытых юнитов не может
		// стать меньше, чем уже забронировано — хост не может задним
		// числом обесценить существующее бронирование гостя
		if *item.UnitsOpen < inv.UnitsBooked {
			return fmt.Sprintf("cannot reduce units_open below %d booked units", inv.UnitsBooked)
		}
	}

	if item.OverridePrice != nil && *item.OverridePrice < 0 {
		return "override_price cannot be negative"
	}

	return ""
}

// applyRoomUpdate применяет валидный элемент к строке инвентаря
func applyRoomUpdate(item RoomUpdate, inv *domain.DayRoomInventory) {
	if item.UnitsOpen != nil {
		inv.UnitsOpen = *item.UnitsOpen
	}
	if item.StopSell != nil {
		inv.StopSell = *item.StopSell
	}
	if item.CTA != nil {
		inv.CTA = *item.CTA
	}
	if item.CTD != nil {
		inv.CTD = *item.CTD
	}
	if item.OverridePrice != nil {
		inv.OverridePrice = item.OverridePrice
	}
	if item.Note != nil {
		inv.Note = item.Note
	}
}
