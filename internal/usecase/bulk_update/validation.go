package bulk_update

import (
	"fmt"

	"github.com/bedbees/BB-CalendarService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ListingID <= 0 {
		return fmt.Errorf("%w: listingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		return ErrInvalidDateRange
	}

	for _, wd := range req.Weekdays {
		if wd < domain.WeekdayMonday || wd > domain.WeekdaySunday {
			return fmt.Errorf("%w: weekday must be between 0 (Monday) and 6 (Sunday)", ErrInvalidInput)
		}
	}

	if !req.Updates.HasChanges() {
		return fmt.Errorf("%w: updates are required", ErrInvalidInput)
	}

	if req.Updates.Status != nil && !req.Updates.Status.Valid() {
		return fmt.Errorf("%w: status must be one of OPEN, CLOSED, BLOCKED", ErrInvalidInput)
	}

	if req.Updates.Price != nil && *req.Updates.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}

	if req.Updates.MinStay != nil && *req.Updates.MinStay < domain.MinStayFloor {
		return fmt.Errorf("%w: min_stay must be at least %d", ErrInvalidInput, domain.MinStayFloor)
	}

	if req.Updates.Notes != nil && len(*req.Updates.Notes) > domain.MaxNoteLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	if req.Updates.Note != nil && len(*req.Updates.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note must not exceed %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	if req.Updates.OverridePrice != nil && req.Updates.OverridePrice.IsNegativeLiteral() {
		return fmt.Errorf("%w: override_price cannot be negative", ErrInvalidInput)
	}

	return nil
}
