package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	availabilityRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/availability"
	listingRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/listing"
	"github.com/bedbees/BB-CalendarService/internal/service/calendar/models"
	"github.com/bedbees/BB-CalendarService/pkg/ptr"
)

// In-memory фейки репозиториев для тестов сервиса

type fakeListingRepo struct {
	listings  map[int64]*domain.Listing
	roomTypes map[int64][]*domain.RoomType
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{
		listings:  make(map[int64]*domain.Listing),
		roomTypes: make(map[int64][]*domain.RoomType),
	}
}

func (f *fakeListingRepo) GetByID(_ context.Context, id int64) (*domain.Listing, error) {
	listing, ok := f.listings[id]
	if !ok {
		return nil, listingRepo.ErrListingNotFound
	}
	return listing, nil
}

func (f *fakeListingRepo) GetActiveRoomTypes(_ context.Context, listingID int64) ([]*domain.RoomType, error) {
	return f.roomTypes[listingID], nil
}

type fakeAvailabilityRepo struct {
	days map[string]*domain.AvailabilityDay // key: date
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{days: make(map[string]*domain.AvailabilityDay)}
}

func (f *fakeAvailabilityRepo) GetByDate(_ context.Context, _ int64, date time.Time) (*domain.AvailabilityDay, error) {
	day, ok := f.days[date.Format(domain.DateFormat)]
	if !ok {
		return nil, availabilityRepo.ErrDayNotFound
	}
	copied := *day
	return &copied, nil
}

func (f *fakeAvailabilityRepo) ListByDateRange(_ context.Context, _ int64, from, to time.Time) ([]*domain.AvailabilityDay, error) {
	result := make([]*domain.AvailabilityDay, 0)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if day, ok := f.days[date.Format(domain.DateFormat)]; ok {
			result = append(result, day)
		}
	}
	return result, nil
}

func (f *fakeAvailabilityRepo) Upsert(_ context.Context, day *domain.AvailabilityDay) (*domain.AvailabilityDay, error) {
	copied := *day
	f.days[day.Date.Format(domain.DateFormat)] = &copied
	return day, nil
}

type fakeInventoryRepo struct {
	records []*domain.DayRoomInventory
}

func (f *fakeInventoryRepo) ListByDate(_ context.Context, _ int64, date time.Time) ([]*domain.DayRoomInventory, error) {
	result := make([]*domain.DayRoomInventory, 0)
	for _, inv := range f.records {
		if inv.Date.Equal(date) {
			result = append(result, inv)
		}
	}
	return result, nil
}

func (f *fakeInventoryRepo) ListByDateRange(_ context.Context, _ int64, from, to time.Time) ([]*domain.DayRoomInventory, error) {
	result := make([]*domain.DayRoomInventory, 0)
	for _, inv := range f.records {
		if !inv.Date.Before(from) && !inv.Date.After(to) {
			result = append(result, inv)
		}
	}
	return result, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeListingRepo, *fakeAvailabilityRepo, *fakeInventoryRepo) {
	listings := newFakeListingRepo()
	listings.listings[1] = testListing()
	listings.roomTypes[1] = testRoomTypes()

	availability := newFakeAvailabilityRepo()
	inventory := &fakeInventoryRepo{}

	svc := NewService(listings, availability, inventory, noopLogger{})
	return svc, listings, availability, inventory
}

func TestGetCalendar_InvalidDateRange(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetCalendar(context.Background(), &models.GetCalendarRequest{
		ListingID: 1,
		UserID:    10,
		From:      testDate(),
		To:        testDate(),
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestGetCalendar_ListingNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetCalendar(context.Background(), &models.GetCalendarRequest{
		ListingID: 999,
		UserID:    10,
		From:      testDate(),
		To:        testDate().AddDate(0, 0, 2),
	})

	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestGetCalendar_AccessDenied(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetCalendar(context.Background(), &models.GetCalendarRequest{
		ListingID: 1,
		UserID:    42, // не владелец
		From:      testDate(),
		To:        testDate().AddDate(0, 0, 2),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Каждая дата периода попадает в ответ ровно один раз, записи без строк
// в БД выводятся из дефолтов
func TestGetCalendar_SparseRecords(t *testing.T) {
	svc, _, availability, _ := newTestService()

	closed := testDate().AddDate(0, 0, 1)
	availability.days[closed.Format(domain.DateFormat)] = &domain.AvailabilityDay{
		ListingID: 1,
		Date:      closed,
		Status:    domain.DayStatusClosed,
	}

	result, err := svc.GetCalendar(context.Background(), &models.GetCalendarRequest{
		ListingID: 1,
		UserID:    10,
		From:      testDate(),
		To:        testDate().AddDate(0, 0, 2),
	})

	require.NoError(t, err)
	require.Len(t, result.Calendar, 3)

	assert.Equal(t, "2025-10-15", result.Calendar[0].Date)
	assert.Equal(t, "OPEN", result.Calendar[0].EffectiveStatus)
	assert.Equal(t, "2025-10-16", result.Calendar[1].Date)
	assert.Equal(t, "CLOSED", result.Calendar[1].EffectiveStatus)
	assert.Equal(t, "2025-10-17", result.Calendar[2].Date)
	assert.Equal(t, "OPEN", result.Calendar[2].EffectiveStatus)

	assert.Equal(t, 3, result.Stats.TotalDays)
	assert.Equal(t, 2, result.Stats.OpenDays)
	assert.Equal(t, 1, result.Stats.BlockedDays)

	assert.Equal(t, "Seaside Villa", result.Listing.Name)
	assert.Equal(t, "USD", result.Listing.Currency)
}

func TestUpdateDay_NoFields(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
		ListingID: 1,
		UserID:    10,
		Date:      testDate(),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateDay_InvalidStatus(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
		ListingID: 1,
		UserID:    10,
		Date:      testDate(),
		Status:    ptr.Ptr("MAYBE"),
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateDay_NegativePrice(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
		ListingID: 1,
		UserID:    10,
		Date:      testDate(),
		Price:     ptr.Ptr(-1.0),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Отсутствующие в запросе поля не изменяются между последовательными
// обновлениями одного дня
func TestUpdateDay_PartialUpdatePreservesFields(t *testing.T) {
	svc, _, availability, _ := newTestService()

	day, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
		ListingID: 1,
		UserID:    10,
		Date:      testDate(),
		Status:    ptr.Ptr("CLOSED"),
		Price:     ptr.Ptr(150.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", day.Status)

	day, err = svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
		ListingID: 1,
		UserID:    10,
		Date:      testDate(),
		MinStay:   ptr.Ptr(3),
	})
	require.NoError(t, err)

	// Статус и цена из первого обновления сохранены
	assert.Equal(t, "CLOSED", day.Status)
	require.NotNil(t, day.Price)
	assert.Equal(t, 150.0, *day.Price)
	require.NotNil(t, day.MinStay)
	assert.Equal(t, 3, *day.MinStay)

	stored := availability.days[testDate().Format(domain.DateFormat)]
	require.NotNil(t, stored)
	assert.Equal(t, domain.DayStatusClosed, stored.Status)
}
