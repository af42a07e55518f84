package calendar

import "errors"

var (
	// ErrListingNotFound возвращается, когда листинг не найден
	ErrListingNotFound = errors.New("calendar.service: listing not found")

	// ErrAccessDenied возвращается, когда листинг принадлежит другому хосту
	ErrAccessDenied = errors.New("calendar.service: access denied")

	// ErrInvalidDateRange возвращается, когда from >= to
	ErrInvalidDateRange = errors.New("calendar.service: from date must be before to date")

	// ErrInvalidStatus возвращается при статусе вне множества OPEN/CLOSED/BLOCKED
	ErrInvalidStatus = errors.New("calendar.service: invalid day status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("calendar.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar.service: internal error")
)
