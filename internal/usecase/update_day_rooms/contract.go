package update_day_rooms

import (
	"context"
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	calendarModels "github.com/bedbees/BB-CalendarService/internal/service/calendar/models"
)

// ListingRepository интерфейс репозитория листингов
type ListingRepository interface {
	GetRoomType(ctx context.Context, listingID, roomTypeID int64) (*domain.RoomType, error)
}

// InventoryRepository интерфейс репозитория инвентаря комнат
type InventoryRepository interface {
	GetByDate(ctx context.Context, listingID, roomTypeID int64, date time.Time) (*domain.DayRoomInventory, error)
	Upsert(ctx context.Context, inv *domain.DayRoomInventory) (*domain.DayRoomInventory, error)
}

// CalendarService интерфейс сервиса календаря
// Используется для проверки владения и обновленной проекции дня
type CalendarService interface {
	GetOwnedListing(ctx context.Context, listingID, userID int64) (*domain.Listing, error)
	ProjectDay(ctx context.Context, listing *domain.Listing, date time.Time) (*calendarModels.DayProjection, error)
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
