package bulk_update

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	availabilityRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/availability"
	inventoryRepo "github.com/bedbees/BB-CalendarService/internal/infra/storage/inventory"
	"github.com/bedbees/BB-CalendarService/internal/service/calendar"
	"github.com/bedbees/BB-CalendarService/pkg/ptr"
)

// In-memory фейки зависимостей use case

type fakeListingRepo struct {
	roomTypes []*domain.RoomType
}

func (f *fakeListingRepo) GetActiveRoomTypes(_ context.Context, _ int64) ([]*domain.RoomType, error) {
	return f.roomTypes, nil
}

type fakeAvailabilityRepo struct {
	days map[string]*domain.AvailabilityDay // key: date
}

func (f *fakeAvailabilityRepo) GetByDate(_ context.Context, _ int64, date time.Time) (*domain.AvailabilityDay, error) {
	day, ok := f.days[date.Format(domain.DateFormat)]
	if !ok {
		return nil, availabilityRepo.ErrDayNotFound
	}
	copied := *day
	return &copied, nil
}

func (f *fakeAvailabilityRepo) Upsert(_ context.Context, day *domain.AvailabilityDay) (*domain.AvailabilityDay, error) {
	copied := *day
	f.days[day.Date.Format(domain.DateFormat)] = &copied
	return day, nil
}

type fakeInventoryRepo struct {
	records map[string]*domain.DayRoomInventory // key: "roomTypeID:date"
}

func invKey(roomTypeID int64, date time.Time) string {
	return fmt.Sprintf("%d:%s", roomTypeID, date.Format(domain.DateFormat))
}

func (f *fakeInventoryRepo) GetByDate(_ context.Context, _ int64, roomTypeID int64, date time.Time) (*domain.DayRoomInventory, error) {
	inv, ok := f.records[invKey(roomTypeID, date)]
	if !ok {
		return nil, inventoryRepo.ErrInventoryNotFound
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeInventoryRepo) Upsert(_ context.Context, inv *domain.DayRoomInventory) (*domain.DayRoomInventory, error) {
	key := invKey(inv.RoomTypeID, inv.Date)
	if existing, ok := f.records[key]; ok {
		inv.UnitsBooked = existing.UnitsBooked
	}
	copied := *inv
	f.records[key] = &copied
	return inv, nil
}

type fakeAuditRepo struct {
	records []*domain.CalendarBulkUpdate
}

func (f *fakeAuditRepo) Create(_ context.Context, record *domain.CalendarBulkUpdate) (*domain.CalendarBulkUpdate, error) {
	record.ID = int64(len(f.records) + 1)
	f.records = append(f.records, record)
	return record, nil
}

type fakeCalendarService struct {
	listing *domain.Listing
}

func (f *fakeCalendarService) GetOwnedListing(_ context.Context, listingID, userID int64) (*domain.Listing, error) {
	if f.listing == nil || f.listing.ID != listingID {
		return nil, calendar.ErrListingNotFound
	}
	if userID != f.listing.OwnerID {
		return nil, calendar.ErrAccessDenied
	}
	return f.listing, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	uc           *UseCase
	availability *fakeAvailabilityRepo
	inventory    *fakeInventoryRepo
	audit        *fakeAuditRepo
}

func newTestEnv() *testEnv {
	listings := &fakeListingRepo{
		roomTypes: []*domain.RoomType{
			{ID: 101, ListingID: 1, Name: "Standard", BasePrice: 80, TotalUnits: 5, IsActive: true},
			{ID: 102, ListingID: 1, Name: "Deluxe", BasePrice: 120, TotalUnits: 10, IsActive: true},
		},
	}
	availability := &fakeAvailabilityRepo{days: make(map[string]*domain.AvailabilityDay)}
	inventory := &fakeInventoryRepo{records: make(map[string]*domain.DayRoomInventory)}
	audit := &fakeAuditRepo{}
	calendarSvc := &fakeCalendarService{
		listing: &domain.Listing{ID: 1, OwnerID: 10, Name: "Seaside Villa"},
	}

	uc := NewUseCase(listings, availability, inventory, audit, calendarSvc, fakeTxManager{}, noopLogger{})
	return &testEnv{uc: uc, availability: availability, inventory: inventory, audit: audit}
}

func TestExecute_NoMatchingDates(t *testing.T) {
	env := newTestEnv()

	// Три будних дня, фильтр только по воскресеньям
	_, err := env.uc.Execute(context.Background(), &Request{
		ListingID: 1,
		UserID:    10,
		From:      date(2025, 10, 6),
		To:        date(2025, 10, 8),
		Weekdays:  []int{6},
		Updates:   Updates{Status: ptr.Ptr(domain.DayStatusClosed)},
	})

	assert.ErrorIs(t, err, ErrNoMatchingDates)
}

func TestExecute_CloseDateRange(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), &Request{
		ListingID: 1,
		UserID:    10,
		From:      date(2025, 10, 1),
		To:        date(2025, 10, 3),
		Updates:   Updates{Status: ptr.Ptr(domain.DayStatusClosed)},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-01", "2025-10-02", "2025-10-03"}, resp.UpdatedDates)
	assert.False(t, resp.HasErrors())

	for _, key := range resp.UpdatedDates {
		stored := env.availability.days[key]
		require.NotNil(t, stored)
		assert.Equal(t, domain.DayStatusClosed, stored.Status)
	}
}

// Процент вместимости резолвится независимо для каждого типа комнаты
func TestExecute_PercentageUnits(t *testing.T) {
	env := newTestEnv()

	expr, err := ParseUnitsExpr("50%")
	require.NoError(t, err)

	resp, err := env.uc.Execute(context.Background(), &Request{
		ListingID: 1,
		UserID:    10,
		From:      date(2025, 10, 1),
		To:        date(2025, 10, 2),
		Updates:   Updates{UnitsOpen: &expr},
	})

	require.NoError(t, err)
	assert.False(t, resp.HasErrors())

	// 50% от 5 с усечением = 2, 50% от 10 = 5
	assert.Equal(t, 2, env.inventory.records[invKey(101, date(2025, 10, 1))].UnitsOpen)
	assert.Equal(t, 5, env.inventory.records[invKey(102, date(2025, 10, 1))].UnitsOpen)
}

// Относительная цена сдвигается от текущей цены каждого типа комнаты
func TestExecute_RelativePrice(t *testing.T) {
	env := newTestEnv()

	expr, err := ParsePriceExpr("+10")
	require.NoError(t, err)

	resp, err := env.uc.Execute(context.Background(), &Request{
		ListingID: 1,
		UserID:    10,
		From:      date(2025, 10, 1),
		To:        date(2025, 10, 2),
		Updates:   Updates{OverridePrice: &expr},
	})

	require.NoError(t, err)
	assert.False(t, resp.HasErrors())

	standard := env.inventory.records[invKey(101, date(2025, 10, 1))]
	require.NotNil(t, standard.OverridePrice)
	assert.InDelta(t, 88.0, *standard.OverridePrice, 0.001)

	deluxe := env.inventory.records[invKey(102, date(2025, 10, 1))]
	require.NotNil(t, deluxe.OverridePrice)
	assert.InDelta(t, 132.0, *deluxe.OverridePrice, 0.001)
}

// Литерал сверх вместимости прижимается к total_units
func TestExecute_UnitsLiteralClamped(t *testing.T) {
	env := newTestEnv()

	expr := UnitsLiteral(99)

	resp, err := env.uc.Execute(context.Background(), &Request{
		ListingID: 1,
		UserID:    10,
		From:      date(2025, 10, 1),
		To:        date(2025, 10, 2),
		Updates:   Updates{UnitsOpen: &expr},
	})

	require.NoError(t, err)
	assert.False(t, resp.HasErrors())

	assert.Equal(t, 5, env.inventory.records[invKey(101, date(2025, 10, 1))].UnitsOpen)
	assert.Equal(t, 10, env.inventory.records[invKey(102, date(2025, 10, 1))].UnitsOpen)
}

// Нарушение инварианта бронирований на одной паре (дата, тип комнаты)
// не мешает применению остальных пар и дат
func TestExecute_BookingSafetyIsolation(t *testing.T) {
	env := newTestEnv()

	// На 2 октября по Standard уже забронировано 3 юнита
	env.inventory.records[invKey(101, date(2025, 10, 2))] = &domain.DayRoomInventory{
		ListingID:   1,
		RoomTypeID:  101,
		Date:        date(2025, 10, 2),
		UnitsOpen:   5,
		UnitsBooked: 3,
	}

	expr := UnitsLiteral(2)

	resp, err := env.uc.Execute(context.Background(), &Request{
		ListingID: 1,
		UserID:    10,
		From:      date(2025, 10, 1),
		To:        date(2025, 10, 3),
		Updates:   Updates{UnitsOpen: &expr},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-10-01", "2025-10-02", "2025-10-03"}, resp.UpdatedDates)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "2025-10-02", resp.Errors[0].Date)
	assert.Equal(t, int64(101), resp.Errors[0].RoomTypeID)
	assert.Equal(t, "cannot reduce units_open below 3 booked units", resp.Errors[0].Error)

	// Отклоненная пара не изменилась, остальные применены
	assert.Equal(t, 5, env.inventory.records[invKey(101, date(2025, 10, 2))].UnitsOpen)
	assert.Equal(t, 2, env.inventory.records[invKey(101, date(2025, 10, 1))].UnitsOpen)
	assert.Equal(t, 2, env.inventory.records[invKey(101, date(2025, 10, 3))].UnitsOpen)
	assert.Equal(t, 2, env.inventory.records[invKey(102, date(2025, 10, 2))].UnitsOpen)
}

func TestExecute_AuditRecord(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), &Request{
		ListingID:  1,
		UserID:     10,
		From:       date(2025, 10, 1),
		To:         date(2025, 10, 2),
		Updates:    Updates{Status: ptr.Ptr(domain.DayStatusBlocked)},
		UpdateType: "seasonal_close",
		Notes:      "winter maintenance",
	})
	require.NoError(t, err)

	require.Len(t, env.audit.records, 1)
	record := env.audit.records[0]

	assert.Equal(t, int64(1), record.ListingID)
	assert.Equal(t, int64(10), record.UserID)
	assert.Equal(t, "seasonal_close", record.UpdateType)
	require.NotNil(t, record.Notes)
	assert.Equal(t, "winter maintenance", *record.Notes)

	// Снимки до/после содержат обе даты; до обновления день был OPEN
	var prev map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(record.PreviousValues, &prev))
	assert.Contains(t, prev, "2025-10-01")
	assert.Contains(t, prev, "2025-10-02")

	var next map[string]struct {
		Day *struct {
			Status string `json:"status"`
		} `json:"day"`
	}
	require.NoError(t, json.Unmarshal(record.NewValues, &next))
	require.NotNil(t, next["2025-10-01"].Day)
	assert.Equal(t, "BLOCKED", next["2025-10-01"].Day.Status)
}

func TestExecute_DefaultUpdateType(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), &Request{
		ListingID: 1,
		UserID:    10,
		From:      date(2025, 10, 1),
		To:        date(2025, 10, 2),
		Updates:   Updates{Status: ptr.Ptr(domain.DayStatusClosed)},
	})
	require.NoError(t, err)

	require.Len(t, env.audit.records, 1)
	assert.Equal(t, DefaultUpdateType, env.audit.records[0].UpdateType)
}

func TestExecute_AccessDenied(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), &Request{
		ListingID: 1,
		UserID:    42,
		From:      date(2025, 10, 1),
		To:        date(2025, 10, 2),
		Updates:   Updates{Status: ptr.Ptr(domain.DayStatusClosed)},
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), &Request{
		ListingID: 1,
		UserID:    10,
		From:      date(2025, 10, 2),
		To:        date(2025, 10, 2),
		Updates:   Updates{Status: ptr.Ptr(domain.DayStatusClosed)},
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
