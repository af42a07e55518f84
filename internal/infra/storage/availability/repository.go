package availability

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

// Repository репозиторий для работы с записями доступности по дням
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает запись доступности на конкретную дату
// Внутри транзакции добавляет FOR UPDATE для блокировки строки
// на время read-validate-write цикла
func (r *Repository) GetByDate(ctx context.Context, listingID int64, date time.Time) (*domain.AvailabilityDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := daySelect().
		Where(squirrel.Eq{"listing_id": listingID, "date": date})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.AvailabilityDay
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&day.ListingID,
		&day.Date,
		&day.Status,
		&day.Price,
		&day.MinStay,
		&day.Notes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan availability day: %v", ErrScanRow, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return &day, nil
}

// ListByDateRange получает записи доступности за период (включительно)
// Отсутствующие даты не фабрикуются — это задача проекции календаря
func (r *Repository) ListByDateRange(ctx context.Context, listingID int64, from, to time.Time) ([]*domain.AvailabilityDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := daySelect().
		Where(squirrel.Eq{"listing_id": listingID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.AvailabilityDay, 0)
	for rows.Next() {
		var day domain.AvailabilityDay
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&day.ID,
			&day.ListingID,
			&day.Date,
			&day.Status,
			&day.Price,
			&day.MinStay,
			&day.Notes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDateRange - scan row: %v", ErrScanRow, err)
		}

		day.CreatedAt = createdAt.Time
		day.UpdatedAt = updatedAt.Time
		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// Upsert создает или обновляет запись доступности на дату
// Запись создается лениво при первой записи в дату
func (r *Repository) Upsert(ctx context.Context, day *domain.AvailabilityDay) (*domain.AvailabilityDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_days").
		Columns(
			"listing_id",
			"date",
			"status",
			"price",
			"min_stay",
			"notes",
		).
		Values(
			day.ListingID,
			day.Date,
			day.Status,
			day.Price,
			day.MinStay,
			day.Notes,
		).
		Suffix(`ON CONFLICT (listing_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			price = EXCLUDED.price,
			min_stay = EXCLUDED.min_stay,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return day, nil
}

func daySelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"listing_id",
		"date",
		"status",
		"price",
		"min_stay",
		"notes",
		"created_at",
		"updated_at",
	).From("availability_days")
}
