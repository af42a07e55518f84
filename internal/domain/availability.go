package domain

import "time"

// DayStatus статус дня на уровне листинга
type DayStatus string

const (
	DayStatusOpen    DayStatus = "OPEN"
	DayStatusClosed  DayStatus = "CLOSED"
	DayStatusBlocked DayStatus = "BLOCKED"
)

// Valid returns true if the status is one of the known values
func (s DayStatus) Valid() bool {
	return s == DayStatusOpen || s == DayStatusClosed || s == DayStatusBlocked
}

// AvailabilityDay represents per-listing per-date overrides: a coarse
// status plus optional price/min-stay overrides at the listing level.
// Отсутствие записи на дату означает "OPEN с дефолтами листинга" —
// это инвариант читающего пути, см. DefaultAvailabilityDay.
type AvailabilityDay struct {
	ID        int64
	ListingID int64
	Date      time.Time

	Status DayStatus

	// nil = наследовать дефолты листинга
	Price   *float64
	MinStay *int

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultAvailabilityDay возвращает запись, подразумеваемую при отсутствии
// строки в БД: день открыт, цены и min stay наследуются от листинга
func DefaultAvailabilityDay(listingID int64, date time.Time) *AvailabilityDay {
	return &AvailabilityDay{
		ListingID: listingID,
		Date:      date,
		Status:    DayStatusOpen,
	}
}

// EffectivePrice returns the day price override or the listing default
func (d *AvailabilityDay) EffectivePrice(listing *Listing) float64 {
	if d.Price != nil {
		return *d.Price
	}
	return listing.DefaultPrice
}

// EffectiveMinStay returns the day min-stay override or the listing default
func (d *AvailabilityDay) EffectiveMinStay(listing *Listing) int {
	if d.MinStay != nil {
		return *d.MinStay
	}
	return listing.DefaultMinStay
}

// IsClosed returns true if the day is closed or blocked at the listing level
func (d *AvailabilityDay) IsClosed() bool {
	return d.Status == DayStatusClosed || d.Status == DayStatusBlocked
}
