package bulk_update

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	availabilityRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/availability"
	inventoryRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/inventory"
	"github.com/bedbees/BB-CalendarService/internal/service/calendar"
)

// DefaultUpdateType тип записи аудита, когда клиент не указал свой
const DefaultUpdateType = "bulk_edit"

// UseCase use case пакетного обновления календаря за период
// Все даты периода обрабатываются в одной сериализуемой транзакции:
// отказ одной пары (дата, тип комнаты) учитывается в отчете и не
// откатывает остальные, транзакция откатывается только при
// инфраструктурной ошибке. Запись аудита создается в той же транзакции.
type UseCase struct {
	listingRepo      ListingRepository
	availabilityRepo AvailabilityRepository
	inventoryRepo    InventoryRepository
	auditRepo        AuditRepository
	calendarSvc      CalendarService
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	listingRepo ListingRepository,
	availabilityRepo AvailabilityRepository,
	inventoryRepo InventoryRepository,
	auditRepo AuditRepository,
	calendarSvc CalendarService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		listingRepo:      listingRepo,
		availabilityRepo: availabilityRepo,
		inventoryRepo:    inventoryRepo,
		auditRepo:        auditRepo,
		calendarSvc:      calendarSvc,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case пакетного обновления
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BulkUpdate: listing=%d, user=%d, period=%s..%s, weekdays=%v",
		req.ListingID, req.UserID,
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.Weekdays)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BulkUpdate: validation failed: %v", err)
		return nil, err
	}

	// 2. Раскрываем период в список дат с учетом фильтра дней недели
	dates := expandDates(req.From, req.To, req.Weekdays)
	if len(dates) == 0 {
		uc.logger.Warn("BulkUpdate: no dates match weekdays=%v in period %s..%s",
			req.Weekdays, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
		return nil, ErrNoMatchingDates
	}

	// 3. Получаем листинг с проверкой владения
	if _, err := uc.calendarSvc.GetOwnedListing(ctx, req.ListingID, req.UserID); err != nil {
		return nil, uc.mapCalendarError(err)
	}

	updatedDates := make([]string, 0, len(dates))
	itemErrors := make([]ItemError, 0)

	// 4. Применяем обновления и пишем аудит в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var roomTypes []*domain.RoomType
		if req.Updates.HasRoomFields() {
			var err error
			roomTypes, err = uc.listingRepo.GetActiveRoomTypes(txCtx, req.ListingID)
			if err != nil {
				return fmt.Errorf("%w: failed to get room types: %v", ErrInternal, err)
			}
		}

		prev := newSnapshotSet()
		next := newSnapshotSet()

		for _, date := range dates {
			dateKey := date.Format(domain.DateFormat)

			if req.Updates.HasDayFields() {
				if err := uc.applyDayUpdates(txCtx, req, date, dateKey, prev, next); err != nil {
					return err
				}
			}

			for _, roomType := range roomTypes {
				if err := uc.applyRoomUpdates(txCtx, req, roomType, date, dateKey, prev, next, &itemErrors); err != nil {
					return err
				}
			}

			// Дата считается затронутой и при поэлементных отказах:
			// отчет об отказах идет отдельным списком
			updatedDates = append(updatedDates, dateKey)
		}

		return uc.writeAudit(txCtx, req, prev, next)
	})

	if err != nil {
		uc.logger.Error("BulkUpdate: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BulkUpdate: listing=%d: %d dates updated, %d rejections",
		req.ListingID, len(updatedDates), len(itemErrors))

	return &Response{
		UpdatedDates: updatedDates,
		Errors:       itemErrors,
	}, nil
}

// applyDayUpdates применяет поля уровня дня к одной дате
func (uc *UseCase) applyDayUpdates(
	ctx context.Context,
	req *Request,
	date time.Time,
	dateKey string,
	prev, next *snapshotSet,
) error {
	day, err := uc.availabilityRepo.GetByDate(ctx, req.ListingID, date)
	if err != nil {
		if !errors.Is(err, availabilityRepo.ErrDayNotFound) {
			return fmt.Errorf("%w: failed to get availability day: %v", ErrInternal, err)
		}
		day = domain.DefaultAvailabilityDay(req.ListingID, date)
	}

	prev.setDay(dateKey, day)

	if req.Updates.Status != nil {
		day.Status = *req.Updates.Status
	}
	if req.Updates.Price != nil {
		day.Price = req.Updates.Price
	}
	if req.Updates.MinStay != nil {
		day.MinStay = req.Updates.MinStay
	}
	if req.Updates.Notes != nil {
		day.Notes = req.Updates.Notes
	}

	saved, err := uc.availabilityRepo.Upsert(ctx, day)
	if err != nil {
		return fmt.Errorf("%w: failed to upsert availability day: %v", ErrInternal, err)
	}

	next.setDay(dateKey, saved)
	return nil
}

// applyRoomUpdates применяет поля уровня комнат к одной паре (дата, тип
// комнаты). Значения-выражения резолвятся против вместимости и текущей
// цены именно этой пары. Нарушение инварианта безопасности бронирований
// отклоняет пару целиком, не прерывая остальные; инфраструктурная
// ошибка откатывает транзакцию.
func (uc *UseCase) applyRoomUpdates(
	ctx context.Context,
	req *Request,
	roomType *domain.RoomType,
	date time.Time,
	dateKey string,
	prev, next *snapshotSet,
	itemErrors *[]ItemError,
) error {
	inv, err := uc.inventoryRepo.GetByDate(ctx, req.ListingID, roomType.ID, date)
	if err != nil {
		if !errors.Is(err, inventoryRepo.ErrInventoryNotFound) {
			return fmt.Errorf("%w: failed to get inventory: %v", ErrInternal, err)
		}
		inv = domain.DefaultDayRoomInventory(req.ListingID, roomType, date)
	}

	var unitsOpen *int
	if req.Updates.UnitsOpen != nil {
		resolved := req.Updates.UnitsOpen.Resolve(roomType.TotalUnits)

		// Литерал сверх вместимости прижимается к границам диапазона
		if resolved < 0 {
			resolved = 0
		}
		if resolved > roomType.TotalUnits {
			resolved = roomType.TotalUnits
		}

		// Инвариант безопасности бронирований: открытых юнитов не может
		// стать меньше, чем уже забронировано на эту дату
		if resolved < inv.UnitsBooked {
			uc.logger.Warn("BulkUpdate: date=%s room=%d rejected: units_open=%d below %d booked",
				dateKey, roomType.ID, resolved, inv.UnitsBooked)
			*itemErrors = append(*itemErrors, ItemError{
				Date:       dateKey,
				RoomTypeID: roomType.ID,
				Error:      fmt.Sprintf("cannot reduce units_open below %d booked units", inv.UnitsBooked),
			})
			return nil
		}

		unitsOpen = &resolved
	}

	var overridePrice *float64
	if req.Updates.OverridePrice != nil {
		resolved := req.Updates.OverridePrice.Resolve(inv.EffectivePrice(roomType))
		if resolved < 0 {
			*itemErrors = append(*itemErrors, ItemError{
				Date:       dateKey,
				RoomTypeID: roomType.ID,
				Error:      "override_price cannot be negative",
			})
			return nil
		}
		overridePrice = &resolved
	}

	prev.setRoom(dateKey, roomType.ID, inv)

	if unitsOpen != nil {
		inv.UnitsOpen = *unitsOpen
	}
	if req.Updates.StopSell != nil {
		inv.StopSell = *req.Updates.StopSell
	}
	if req.Updates.CTA != nil {
		inv.CTA = *req.Updates.CTA
	}
	if req.Updates.CTD != nil {
		inv.CTD = *req.Updates.CTD
	}
	if overridePrice != nil {
		inv.OverridePrice = overridePrice
	}
	if req.Updates.Note != nil {
		inv.Note = req.Updates.Note
	}

	saved, err := uc.inventoryRepo.Upsert(ctx, inv)
	if err != nil {
		return fmt.Errorf("%w: failed to upsert inventory: %v", ErrInternal, err)
	}

	next.setRoom(dateKey, roomType.ID, saved)
	return nil
}

// writeAudit создает append-only запись аудита в текущей транзакции
func (uc *UseCase) writeAudit(ctx context.Context, req *Request, prev, next *snapshotSet) error {
	previousValues, err := prev.marshal()
	if err != nil {
		return fmt.Errorf("%w: failed to marshal previous values: %v", ErrInternal, err)
	}

	newValues, err := next.marshal()
	if err != nil {
		return fmt.Errorf("%w: failed to marshal new values: %v", ErrInternal, err)
	}

	updateType := req.UpdateType
	if updateType == "" {
		updateType = DefaultUpdateType
	}

	record := &domain.CalendarBulkUpdate{
		ListingID:      req.ListingID,
		UserID:         req.UserID,
		StartDate:      req.From,
		EndDate:        req.To,
		UpdateType:     updateType,
		PreviousValues: previousValues,
		NewValues:      newValues,
	}
	if req.Notes != "" {
		record.Notes = &req.Notes
	}

	if _, err := uc.auditRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("%w: failed to create audit record: %v", ErrInternal, err)
	}

	return nil
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
