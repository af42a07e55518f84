package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	"github.com/bedbees/BB-CalendarService/pkg/dbmetrics"
	"github.com/bedbees/BB-CalendarService/pkg/psqlbuilder"
)

// Repository append-only репозиторий аудита пакетных обновлений календаря
// Записи никогда не изменяются и не удаляются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает одну запись аудита пакетного обновления
func (r *Repository) Create(ctx context.Context, record *domain.CalendarBulkUpdate) (*domain.CalendarBulkUpdate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_bulk_updates").
		Columns(
			"listing_id",
			"user_id",
			"start_date",
			"end_date",
			"update_type",
			"previous_values",
			"new_values",
			"notes",
		).
		Values(
			record.ListingID,
			record.UserID,
			record.StartDate,
			record.EndDate,
			record.UpdateType,
			[]byte(record.PreviousValues),
			[]byte(record.NewValues),
			record.Notes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time

	return record, nil
}
