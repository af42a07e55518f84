package listing

import "errors"

var (
	// ErrListingNotFound возвращается, когда листинг не найден
	ErrListingNotFound = errors.New("listing.repository: listing not found")

	// ErrRoomTypeNotFound возвращается, когда тип комнаты не найден в листинге
	ErrRoomTypeNotFound = errors.New("listing.repository: room type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("listing.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("listing.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("listing.repository: failed to scan row")
)
