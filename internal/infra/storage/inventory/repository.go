package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	"github.com/bedbees/BB-CalendarService/pkg/dbmetrics"
	"github.com/bedbees/BB-CalendarService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с инвентарём комнат по дням
// Единица конкуренции — строка (listing, room_type, date): два параллельных
// пакетных обновления по пересекающимся датам сериализуются блокировкой строк,
// а не блокировкой на уровне приложения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория инвентаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает запись инвентаря на (room_type, date)
// Внутри транзакции добавляет FOR UPDATE: цикл "прочитать units_booked,
// проверить, записать units_open" должен быть атомарным по строке,
// иначе два писателя одобрят некорректный units_open по устаревшим данным
func (r *Repository) GetByDate(ctx context.Context, listingID, roomTypeID int64, date time.Time) (*domain.DayRoomInventory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := inventorySelect().
		Where(squirrel.Eq{
			"listing_id":   listingID,
			"room_type_id": roomTypeID,
			"date":         date,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
		}
		return nil, ErrInventoryNotFound
	}

	return scanInventory(rows)
}

// ListByDate получает записи инвентаря всех типов комнат на дату
func (r *Repository) ListByDate(ctx context.Context, listingID int64, date time.Time) ([]*domain.DayRoomInventory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := inventorySelect().
		Where(squirrel.Eq{"listing_id": listingID, "date": date}).
		OrderBy("room_type_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return collectInventory(rows)
}

// ListByDateRange получает записи инвентаря за период (включительно)
func (r *Repository) ListByDateRange(ctx context.Context, listingID int64, from, to time.Time) ([]*domain.DayRoomInventory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := inventorySelect().
		Where(squirrel.Eq{"listing_id": listingID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC, room_type_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return collectInventory(rows)
}

// Upsert создает или обновляет запись инвентаря
// units_booked намеренно не входит в обновление: им владеет система
// бронирования, календарный движок его не перезаписывает
func (r *Repository) Upsert(ctx context.Context, inv *domain.DayRoomInventory) (*domain.DayRoomInventory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_room_inventory").
		Columns(
			"listing_id",
			"room_type_id",
			"date",
			"units_open",
			"units_booked",
			"stop_sell",
			"cta",
			"ctd",
			"override_price",
			"note",
		).
		Values(
			inv.ListingID,
			inv.RoomTypeID,
			inv.Date,
			inv.UnitsOpen,
			inv.UnitsBooked,
			inv.StopSell,
			inv.CTA,
			inv.CTD,
			inv.OverridePrice,
			inv.Note,
		).
		Suffix(`ON CONFLICT (listing_id, room_type_id, date) DO UPDATE SET
			units_open = EXCLUDED.units_open,
			stop_sell = EXCLUDED.stop_sell,
			cta = EXCLUDED.cta,
			ctd = EXCLUDED.ctd,
			override_price = EXCLUDED.override_price,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, units_booked, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inv.ID,
		&inv.UnitsBooked,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return inv, nil
}

func inventorySelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"listing_id",
		"room_type_id",
		"date",
		"units_open",
		"units_booked",
		"stop_sell",
		"cta",
		"ctd",
		"override_price",
		"note",
		"created_at",
		"updated_at",
	).From("day_room_inventory")
}

func scanInventory(rows *sql.Rows) (*domain.DayRoomInventory, error) {
	var inv domain.DayRoomInventory
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&inv.ID,
		&inv.ListingID,
		&inv.RoomTypeID,
		&inv.Date,
		&inv.UnitsOpen,
		&inv.UnitsBooked,
		&inv.StopSell,
		&inv.CTA,
		&inv.CTD,
		&inv.OverridePrice,
		&inv.Note,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: scanInventory - scan row: %v", ErrScanRow, err)
	}

	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return &inv, nil
}

func collectInventory(rows *sql.Rows) ([]*domain.DayRoomInventory, error) {
	records := make([]*domain.DayRoomInventory, 0)

	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: collectInventory - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
