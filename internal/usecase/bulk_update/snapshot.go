package bulk_update

import (
	"encoding/json"
	"fmt"

	"github.com/bedbees/BB-CalendarService/internal/domain"
)

// Снимки значений до/после для записи аудита. Снимаются только даты и
// строки, которых коснулось обновление, ключи верхнего уровня - даты.

type daySnapshot struct {
	Status  domain.DayStatus `json:"status"`
	Price   *float64         `json:"price"`
	MinStay *int             `json:"minStay"`
	Notes   *string          `json:"notes"`
}

type roomSnapshot struct {
	UnitsOpen     int      `json:"unitsOpen"`
	UnitsBooked   int      `json:"unitsBooked"`
	StopSell      bool     `json:"stopSell"`
	CTA           bool     `json:"cta"`
	CTD           bool     `json:"ctd"`
	OverridePrice *float64 `json:"overridePrice"`
	Note          *string  `json:"note"`
}

type dateSnapshot struct {
	Day   *daySnapshot            `json:"day,omitempty"`
	Rooms map[string]roomSnapshot `json:"rooms,omitempty"`
}

func snapshotDay(day *domain.AvailabilityDay) *daySnapshot {
	return &daySnapshot{
		Status:  day.Status,
		Price:   day.Price,
		MinStay: day.MinStay,
		Notes:   day.Notes,
	}
}

func snapshotRoom(inv *domain.DayRoomInventory) roomSnapshot {
	return roomSnapshot{
		UnitsOpen:     inv.UnitsOpen,
		UnitsBooked:   inv.UnitsBooked,
		StopSell:      inv.StopSell,
		CTA:           inv.CTA,
		CTD:           inv.CTD,
		OverridePrice: inv.OverridePrice,
		Note:          inv.Note,
	}
}

// snapshotSet накапливает снимки по датам в порядке обхода
type snapshotSet struct {
	dates map[string]*dateSnapshot
}

func newSnapshotSet() *snapshotSet {
	return &snapshotSet{dates: make(map[string]*dateSnapshot)}
}

func (s *snapshotSet) forDate(dateKey string) *dateSnapshot {
	snap, ok := s.dates[dateKey]
	if !ok {
		snap = &dateSnapshot{}
		s.dates[dateKey] = snap
	}
	return snap
}

func (s *snapshotSet) setDay(dateKey string, day *domain.AvailabilityDay) {
	s.forDate(dateKey).Day = snapshotDay(day)
}

func (s *snapshotSet) setRoom(dateKey string, roomTypeID int64, inv *domain.DayRoomInventory) {
	snap := s.forDate(dateKey)
	if snap.Rooms == nil {
		snap.Rooms = make(map[string]roomSnapshot)
	}
	snap.Rooms[fmt.Sprintf("%d", roomTypeID)] = snapshotRoom(inv)
}

func (s *snapshotSet) marshal() (json.RawMessage, error) {
	return json.Marshal(s.dates)
}
