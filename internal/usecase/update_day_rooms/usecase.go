package update_day_rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	inventoryRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/inventory"
	listingRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/listing"
	"github.com/bedbees/BB-CalendarService/internal/service/calendar"
)

// UseCase use case обновления инвентаря комнат на одну дату
// Элементы запроса валидируются и применяются независимо: отказ одного
// элемента не откатывает остальные, транзакция откатывается только
// при инфраструктурной ошибке
type UseCase struct {
	listingRepo   ListingRepository
	inventoryRepo InventoryRepository
	calendarSvc   CalendarService
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	listingRepo ListingRepository,
	inventoryRepo InventoryRepository,
	calendarSvc CalendarService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		listingRepo:   listingRepo,
		inventoryRepo: inventoryRepo,
		calendarSvc:   calendarSvc,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет use case обновления инвентаря комнат
// Цикл "прочитать units_booked, проверить, записать units_open" выполняется
// в сериализуемой транзакции с блокировкой строк, чтобы параллельный
// писатель не одобрил некорректный units_open по устаревшим данным
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateDayRooms: listing=%d, user=%d, date=%s, rooms=%d",
		req.ListingID, req.UserID, req.Date.Format(domain.DateFormat), len(req.Rooms))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateDayRooms: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем листинг с проверкой владения
	listing, err := uc.calendarSvc.GetOwnedListing(ctx, req.ListingID, req.UserID)
	if err != nil {
		return nil, uc.mapCalendarError(err)
	}

	updated := make([]int64, 0, len(req.Rooms))
	itemErrors := make([]ItemError, 0)

	// 3. Применяем элементы в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for _, item := range req.Rooms {
			// 3.1. Тип комнаты перечитывается на каждый элемент:
			// total_units нельзя кэшировать через границу валидации
			roomType, err := uc.listingRepo.GetRoomType(txCtx, req.ListingID, item.RoomTypeID)
			if err != nil {
				if errors.Is(err, listingRepo.ErrRoomTypeNotFound) {
					uc.logger.Warn("UpdateDayRooms: room type id=%d not found in listing=%d",
						item.RoomTypeID, req.ListingID)
					itemErrors = append(itemErrors, ItemError{
						RoomTypeID: item.RoomTypeID,
						Error:      "room type not found",
					})
					continue
				}
				return fmt.Errorf("%w: failed to get room type: %v", ErrInternal, err)
			}

			// 3.2. Текущая строка инвентаря под блокировкой; при первой
			// записи в дату исходим из полностью открытого инвентаря
			inv, err := uc.inventoryRepo.GetByDate(txCtx, req.ListingID, item.RoomTypeID, req.Date)
			if err != nil {
				if !errors.Is(err, inventoryRepo.ErrInventoryNotFound) {
					return fmt.Errorf("%w: failed to get inventory: %v", ErrInternal, err)
				}
				inv = domain.DefaultDayRoomInventory(req.ListingID, roomType, req.Date)
			}

			// 3.3. Валидация элемента против текущего состояния строки
			if msg := validateRoomUpdate(item, roomType, inv); msg != "" {
				uc.logger.Warn("UpdateDayRooms: room type id=%d rejected: %s", item.RoomTypeID, msg)
				itemErrors = append(itemErrors, ItemError{
					RoomTypeID: item.RoomTypeID,
					Error:      msg,
				})
				continue
			}

			// 3.4. Применяем и сохраняем
			applyRoomUpdate(item, inv)

			if _, err := uc.inventoryRepo.Upsert(txCtx, inv); err != nil {
				return fmt.Errorf("%w: failed to upsert inventory: %v", ErrInternal, err)
			}

			updated = append(updated, item.RoomTypeID)
		}

		return nil
	})

	if err != nil {
		uc.logger.Error("UpdateDayRooms: transaction failed: %v", err)
		return nil, err
	}

	// 4. Собираем обновленную проекцию дня
	day, err := uc.calendarSvc.ProjectDay(ctx, listing, req.Date)
	if err != nil {
		uc.logger.Error("UpdateDayRooms: failed to project day: %v", err)
		return nil, fmt.Errorf("%w: failed to project day: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateDayRooms: listing=%d date=%s: %d updated, %d rejected",
		req.ListingID, req.Date.Format(domain.DateFormat), len(updated), len(itemErrors))

	return &Response{
		Updated: updated,
		Errors:  itemErrors,
		Day:     day,
	}, nil
}

// mapCalendarError конвертирует ошибки сервиса календаря в ошибки usecase
func (uc *UseCase) mapCalendarError(err error) error {
	switch {
	case errors.Is(err, calendar.ErrListingNotFound):
		return ErrListingNotFound
	case errors.Is(err, calendar.ErrAccessDenied):
		return ErrAccessDenied
	default:
		return fmt.Errorf("%w: failed to get listing: %v", ErrInternal, err)
	}
}
