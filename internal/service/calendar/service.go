package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	availabilityRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/availability"
	listingRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/listing"
	"github.com/bedbees/BB-CalendarService/internal/service/calendar/models"
)

// Service сервис календаря: проекция по дням и одиночные обновления дня
// Чтения не имеют побочных эффектов, проекцию безопасно кэшировать
// на короткое окно по (listing, период)
type Service struct {
	listingRepo      ListingRepository
	availabilityRepo AvailabilityRepository
	inventoryRepo    InventoryRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	listingRepo ListingRepository,
	availabilityRepo AvailabilityRepository,
	inventoryRepo InventoryRepository,
	logger Logger,
) *Service {
	return &Service{
		listingRepo:      listingRepo,
		availabilityRepo: availabilityRepo,
		inventoryRepo:    inventoryRepo,
		logger:           logger,
	}
}

// GetOwnedListing получает листинг с проверкой владения
// Нерезолвящаяся ссылка на листинг закрывается отказом (fail closed)
func (s *Service) GetOwnedListing(ctx context.Context, listingID, userID int64) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			s.logger.Warn("GetOwnedListing: listing id=%d not found", listingID)
			return nil, ErrListingNotFound
		}
		s.logger.Error("GetOwnedListing: repository error for listing id=%d: %v", listingID, err)
		return nil, fmt.Errorf("%w: GetOwnedListing - repository error: %v", ErrInternal, err)
	}

	if !listing.IsOwnedBy(userID) {
		s.logger.Warn("GetOwnedListing: user=%d is not the owner of listing id=%d", userID, listingID)
		return nil, ErrAccessDenied
	}

	return listing, nil
}

// GetCalendar собирает календарь листинга за период (границы включительно)
// Итерация идет по дням, а не по строкам БД: каждая дата периода попадает
// в ответ ровно один раз даже при разреженных записях
func (s *Service) GetCalendar(ctx context.Context, req *models.GetCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("GetCalendar: listing=%d, user=%d, from=%s, to=%s",
		req.ListingID, req.UserID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if !req.From.Before(req.To) {
		s.logger.Warn("GetCalendar: invalid date range for listing=%d", req.ListingID)
		return nil, ErrInvalidDateRange
	}

	listing, err := s.GetOwnedListing(ctx, req.ListingID, req.UserID)
	if err != nil {
		return nil, err
	}

	roomTypes, err := s.listingRepo.GetActiveRoomTypes(ctx, req.ListingID)
	if err != nil {
		s.logger.Error("GetCalendar: failed to get room types for listing=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: GetCalendar - get room types: %v", ErrInternal, err)
	}

	days, err := s.availabilityRepo.ListByDateRange(ctx, req.ListingID, req.From, req.To)
	if err != nil {
		s.logger.Error("GetCalendar: failed to get availability days for listing=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: GetCalendar - get availability days: %v", ErrInternal, err)
	}

	dayByDate := make(map[string]*domain.AvailabilityDay, len(days))
	for _, day := range days {
		dayByDate[day.Date.Format(domain.DateFormat)] = day
	}

	invRecords, err := s.inventoryRepo.ListByDateRange(ctx, req.ListingID, req.From, req.To)
	if err != nil {
		s.logger.Error("GetCalendar: failed to get inventory for listing=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: GetCalendar - get inventory: %v", ErrInternal, err)
	}

	invByDate := make(map[string]map[int64]*domain.DayRoomInventory)
	for _, inv := range invRecords {
		key := inv.Date.Format(domain.DateFormat)
		if invByDate[key] == nil {
			invByDate[key] = make(map[int64]*domain.DayRoomInventory)
		}
		invByDate[key][inv.RoomTypeID] = inv
	}

	calendar := make([]*models.DayProjection, 0)
	for date := req.From; !date.After(req.To); date = date.AddDate(0, 0, 1) {
		key := date.Format(domain.DateFormat)
		calendar = append(calendar, buildDayProjection(listing, date, dayByDate[key], roomTypes, invByDate[key]))
	}

	s.logger.Info("GetCalendar: built %d day projections for listing=%d", len(calendar), req.ListingID)

	return &models.CalendarResponse{
		Listing:  models.FromDomainListing(listing),
		Calendar: calendar,
		Stats:    buildRangeStats(calendar),
	}, nil
}

// ProjectDay собирает проекцию одного дня
// Используется для обновленного представления дня после мутаций
func (s *Service) ProjectDay(ctx context.Context, listing *domain.Listing, date time.Time) (*models.DayProjection, error) {
	roomTypes, err := s.listingRepo.GetActiveRoomTypes(ctx, listing.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: ProjectDay - get room types: %v", ErrInternal, err)
	}

	day, err := s.availabilityRepo.GetByDate(ctx, listing.ID, date)
	if err != nil && !errors.Is(err, availabilityRepo.ErrDayNotFound) {
		return nil, fmt.Errorf("%w: ProjectDay - get availability day: %v", ErrInternal, err)
	}

	invRecords, err := s.inventoryRepo.ListByDate(ctx, listing.ID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: ProjectDay - get inventory: %v", ErrInternal, err)
	}

	invByRoomType := make(map[int64]*domain.DayRoomInventory, len(invRecords))
	for _, inv := range invRecords {
		invByRoomType[inv.RoomTypeID] = inv
	}

	return buildDayProjection(listing, date, day, roomTypes, invByRoomType), nil
}

// UpdateDay частично обновляет запись дня на уровне листинга
// Отсутствующие в запросе поля не изменяются; запись создается лениво
// при первой записи в дату
func (s *Service) UpdateDay(ctx context.Context, req *models.UpdateDayRequest) (*models.DayProjection, error) {
	s.logger.Info("UpdateDay: listing=%d, user=%d, date=%s",
		req.ListingID, req.UserID, req.Date.Format(domain.DateFormat))

	if !req.HasChanges() {
		s.logger.Warn("UpdateDay: no fields to update for listing=%d", req.ListingID)
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if req.Status != nil && !domain.DayStatus(*req.Status).Valid() {
		s.logger.Warn("UpdateDay: invalid status %q for listing=%d", *req.Status, req.ListingID)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
	}

	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if req.MinStay != nil && *req.MinStay < domain.MinStayFloor {
		return nil, fmt.Errorf("%w: min_stay must be at least %d", ErrInvalidInput, domain.MinStayFloor)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNoteLength {
		return nil, fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	listing, err := s.GetOwnedListing(ctx, req.ListingID, req.UserID)
	if err != nil {
		return nil, err
	}

	day, err := s.availabilityRepo.GetByDate(ctx, req.ListingID, req.Date)
	if err != nil {
		if !errors.Is(err, availabilityRepo.ErrDayNotFound) {
			s.logger.Error("UpdateDay: failed to get availability day: %v", err)
			return nil, fmt.Errorf("%w: UpdateDay - get availability day: %v", ErrInternal, err)
		}
		day = domain.DefaultAvailabilityDay(req.ListingID, req.Date)
	}

	if req.Status != nil {
		day.Status = domain.DayStatus(*req.Status)
	}
	if req.Price != nil {
		day.Price = req.Price
	}
	if req.MinStay != nil {
		day.MinStay = req.MinStay
	}
	if req.Notes != nil {
		day.Notes = req.Notes
	}

	if _, err := s.availabilityRepo.Upsert(ctx, day); err != nil {
		s.logger.Error("UpdateDay: failed to upsert availability day: %v", err)
		return nil, fmt.Errorf("%w: UpdateDay - upsert: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDay: day %s updated for listing=%d", req.Date.Format(domain.DateFormat), req.ListingID)

	return s.ProjectDay(ctx, listing, req.Date)
}
