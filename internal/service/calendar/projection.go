package calendar

import (
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	"github.com/bedbees/BB-CalendarService/internal/service/calendar/models"
)

// buildDayProjection собирает проекцию одного дня из записей БД
// day == nil означает отсутствие записи на дату: день открыт с дефолтами
// листинга; отсутствие записи инвентаря для типа комнаты означает
// "все юниты открыты по базовой цене" — оба правила вывода дефолтов
// обязаны выполняться здесь, а не в хранилище
func buildDayProjection(
	listing *domain.Listing,
	date time.Time,
	day *domain.AvailabilityDay,
	roomTypes []*domain.RoomType,
	invByRoomType map[int64]*domain.DayRoomInventory,
) *models.DayProjection {
	if day == nil {
		day = domain.DefaultAvailabilityDay(listing.ID, date)
	}

	rooms := make([]models.RoomSnapshot, 0, len(roomTypes))
	totalAvailable := 0
	totalCapacity := 0
	availableRooms := 0
	stopSellCount := 0

	for _, roomType := range roomTypes {
		inv, ok := invByRoomType[roomType.ID]
		if !ok {
			inv = domain.DefaultDayRoomInventory(listing.ID, roomType, date)
		}

		available := inv.Available()
		totalAvailable += available
		totalCapacity += roomType.TotalUnits
		if inv.StopSell {
			stopSellCount++
		}
		if available > 0 && !inv.StopSell {
			availableRooms++
		}

		rooms = append(rooms, models.RoomSnapshot{
			RoomTypeID:    roomType.ID,
			RoomName:      roomType.Name,
			BasePrice:     roomType.BasePrice,
			TotalUnits:    roomType.TotalUnits,
			UnitsOpen:     inv.UnitsOpen,
			UnitsBooked:   inv.UnitsBooked,
			Available:     available,
			StopSell:      inv.StopSell,
			CTA:           inv.CTA,
			CTD:           inv.CTD,
			OverridePrice: inv.OverridePrice,
			Note:          inv.Note,
		})
	}

	return &models.DayProjection{
		Date:            date.Format(domain.DateFormat),
		Status:          string(day.Status),
		EffectiveStatus: string(deriveEffectiveStatus(day, rooms, totalAvailable, stopSellCount)),
		Price:           day.Price,
		MinStay:         day.MinStay,
		Notes:           day.Notes,
		Summary: models.DaySummary{
			TotalRooms:     len(rooms),
			AvailableRooms: availableRooms,
			TotalCapacity:  totalCapacity,
			TotalAvailable: totalAvailable,
			StopSellCount:  stopSellCount,
		},
		Rooms: rooms,
	}
}

// deriveEffectiveStatus вычисляет производный статус дня:
// CLOSED/BLOCKED с уровня листинга имеют приоритет, затем STOP_SELL,
// если продажа закрыта по всем типам комнат, затем FULL при нулевой
// суммарной доступности
func deriveEffectiveStatus(
	day *domain.AvailabilityDay,
	rooms []models.RoomSnapshot,
	totalAvailable int,
	stopSellCount int,
) domain.EffectiveStatus {
	if day.IsClosed() {
		return domain.EffectiveStatus(day.Status)
	}
	if stopSellCount == len(rooms) {
		return domain.EffectiveStatusStopSell
	}
	if totalAvailable == 0 {
		return domain.EffectiveStatusFull
	}
	return domain.EffectiveStatusOpen
}

// buildRangeStats считает статистику по собранному периоду
func buildRangeStats(calendar []*models.DayProjection) models.RangeStats {
	stats := models.RangeStats{TotalDays: len(calendar)}

	for _, day := range calendar {
		switch day.EffectiveStatus {
		case string(domain.EffectiveStatusOpen):
			stats.OpenDays++
		case string(domain.EffectiveStatusBlocked), string(domain.EffectiveStatusClosed):
			stats.BlockedDays++
		}
	}

	return stats
}
