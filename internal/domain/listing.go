package domain

import "time"

// ListingType тип объекта размещения
type ListingType string

const (
	ListingTypeAccommodation ListingType = "accommodation"
	ListingTypeTour          ListingType = "tour"
)

// Listing represents a sellable entity (accommodation or tour),
// the root of the calendar hierarchy
type Listing struct {
	ID          int64
	OwnerID     int64
	Name        string
	ListingType ListingType

	Country string
	City    string

	// Валюта и дефолтные значения, наследуемые календарём
	Currency       string
	DefaultPrice   float64
	DefaultMinStay int

	IsActive    bool
	IsPublished bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the listing belongs to the given user
func (l *Listing) IsOwnedBy(userID int64) bool {
	return l.OwnerID == userID
}

// RoomType represents a sellable sub-unit of a listing with fixed
// physical capacity (e.g. "Standard Room", "Tour Package")
type RoomType struct {
	ID        int64
	ListingID int64
	Name      string
	BasePrice float64

	// Физическое количество юнитов, верхняя граница для units_open
	TotalUnits int

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
