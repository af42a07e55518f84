package update_day_rooms

import "errors"

var (
	// ErrListingNotFound возвращается, когда листинг не найден
	ErrListingNotFound = errors.New("update_day_rooms: listing not found")

	// ErrAccessDenied возвращается, когда листинг принадлежит другому хосту
	ErrAccessDenied = errors.New("update_day_rooms: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_day_rooms: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_day_rooms: internal error")
)
