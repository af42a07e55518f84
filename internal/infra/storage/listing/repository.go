package listing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/bedbees/BB-CalendarService/internal/domain"
	"github.com/bedbees/BB-CalendarService/pkg/dbmetrics"
	"github.com/bedbees/BB-CalendarService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения листингов и типов комнат
// Листинги и типы комнат создаются компонентом управления листингами,
// календарный движок их только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листингов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает листинг по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"name",
		"listing_type",
		"country",
		"city",
		"currency",
		"default_price",
		"default_min_stay",
		"is_active",
		"is_published",
		"created_at",
		"updated_at",
	).
		From("listings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var listing domain.Listing
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Name,
		&listing.ListingType,
		&listing.Country,
		&listing.City,
		&listing.Currency,
		&listing.DefaultPrice,
		&listing.DefaultMinStay,
		&listing.IsActive,
		&listing.IsPublished,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan listing: %v", ErrScanRow, err)
	}

	listing.CreatedAt = createdAt.Time
	listing.UpdatedAt = updatedAt.Time

	return &listing, nil
}

// GetActiveRoomTypes получает активные типы комнат листинга
// Деактивированные типы не попадают в новые проекции календаря,
// их исторические записи инвентаря при этом сохраняются
func (r *Repository) GetActiveRoomTypes(ctx context.Context, listingID int64) ([]*domain.RoomType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := roomTypeSelect().
		Where(squirrel.Eq{"listing_id": listingID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveRoomTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveRoomTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	roomTypes := make([]*domain.RoomType, 0)
	for rows.Next() {
		roomType, err := scanRoomType(rows)
		if err != nil {
			return nil, err
		}
		roomTypes = append(roomTypes, roomType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveRoomTypes - rows error: %v", ErrScanRow, err)
	}

	return roomTypes, nil
}

// GetRoomType получает тип комнаты по ID с проверкой принадлежности листингу
func (r *Repository) GetRoomType(ctx context.Context, listingID, roomTypeID int64) (*domain.RoomType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := roomTypeSelect().
		Where(squirrel.Eq{"id": roomTypeID, "listing_id": listingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomType - build select query: %v", ErrBuildQuery, err)
	}

	var roomType domain.RoomType
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&roomType.ID,
		&roomType.ListingID,
		&roomType.Name,
		&roomType.BasePrice,
		&roomType.TotalUnits,
		&roomType.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRoomTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomType - scan room type: %v", ErrScanRow, err)
	}

	roomType.CreatedAt = createdAt.Time
	roomType.UpdatedAt = updatedAt.Time

	return &roomType, nil
}

func roomTypeSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"listing_id",
		"name",
		"base_price",
		"total_units",
		"is_active",
		"created_at",
		"updated_at",
	).From("room_types")
}

func scanRoomType(rows *sql.Rows) (*domain.RoomType, error) {
	var roomType domain.RoomType
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&roomType.ID,
		&roomType.ListingID,
		&roomType.Name,
		&roomType.BasePrice,
		&roomType.TotalUnits,
		&roomType.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: scanRoomType - scan row: %v", ErrScanRow, err)
	}

	roomType.CreatedAt = createdAt.Time
	roomType.UpdatedAt = updatedAt.Time

	return &roomType, nil
}
