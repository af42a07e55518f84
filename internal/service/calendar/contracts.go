package calendar

import (
	"context"
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
)

// ListingRepository интерфейс репозитория листингов
type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	GetActiveRoomTypes(ctx context.Context, listingID int64) ([]*domain.RoomType, error)
}

// AvailabilityRepository интерфейс репозитория доступности по дням
type AvailabilityRepository interface {
	GetByDate(ctx context.Context, listingID int64, date time.Time) (*domain.AvailabilityDay, error)
	ListByDateRange(ctx context.Context, listingID int64, from, to time.Time) ([]*domain.AvailabilityDay, error)
	Upsert(ctx context.Context, day *domain.AvailabilityDay) (*domain.AvailabilityDay, error)
}

// InventoryRepository интерфейс репозитория инвентаря комнат
type InventoryRepository interface {
	ListByDate(ctx context.Context, listingID int64, date time.Time) ([]*domain.DayRoomInventory, error)
	ListByDateRange(ctx context.Context, listingID int64, from, to time.Time) ([]*domain.DayRoomInventory, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
