package inventory

import "errors"

var (
	// ErrInventoryNotFound возвращается, когда запись инвентаря не найдена
	// Вызывающая сторона трактует это как "все юниты открыты по базовой цене"
	ErrInventoryNotFound = errors.New("inventory.repository: inventory record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("inventory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("inventory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("inventory.repository: failed to scan row")
)
