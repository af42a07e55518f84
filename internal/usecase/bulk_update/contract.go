package bulk_update

import (
	"context"
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
)

// ListingRepository интерфейс репозитория листингов
type ListingRepository interface {
	GetActiveRoomTypes(ctx context.Context, listingID int64) ([]*domain.RoomType, error)
}

// AvailabilityRepository интерфейс репозитория доступности по дням
type AvailabilityRepository interface {
	GetByDate(ctx context.Context, listingID int64, date time.Time) (*domain.AvailabilityDay, error)
	Upsert(ctx context.Context, day *domain.AvailabilityDay) (*domain.AvailabilityDay, error)
}

// InventoryRepository интерфейс репозитория инвентаря комнат
type InventoryRepository interface {
	GetByDate(ctx context.Context, listingID, roomTypeID int64, date time.Time) (*domain.DayRoomInventory, error)
	Upsert(ctx context.Context, inv *domain.DayRoomInventory) (*domain.DayRoomInventory, error)
}

// AuditRepository интерфейс репозитория журнала пакетных обновлений
type AuditRepository interface {
	Create(ctx context.Context, record *domain.CalendarBulkUpdate) (*domain.CalendarBulkUpdate, error)
}

// CalendarService интерфейс сервиса календаря
// Используется для проверки владения листингом
type CalendarService interface {
	GetOwnedListing(ctx context.Context, listingID, userID int64) (*domain.Listing, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
