package availability

import "errors"

var (
	// ErrDayNotFound возвращается, когда запись на дату не найдена
	// Вызывающая сторона трактует это как "день открыт с дефолтами листинга"
	ErrDayNotFound = errors.New("availability.repository: availability day not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
