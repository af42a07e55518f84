package bulk_update

import "errors"

var (
	// ErrListingNotFound возвращается, когда листинг не найден
	ErrListingNotFound = errors.New("bulk_update: listing not found")

	// ErrAccessDenied возвращается, когда листинг принадлежит другому хосту
	ErrAccessDenied = errors.New("bulk_update: access denied")

	// ErrInvalidDateRange возвращается, когда from >= to
	ErrInvalidDateRange = errors.New("bulk_update: from date must be before to date")

	// ErrNoMatchingDates возвращается, когда фильтр дней недели не оставил ни одной даты
	ErrNoMatchingDates = errors.New("bulk_update: no dates match the specified criteria")

	// ErrInvalidExpression возвращается при неразбираемом значении-выражении
	ErrInvalidExpression = errors.New("bulk_update: invalid value expression")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bulk_update: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("bulk_update: internal error")
)
