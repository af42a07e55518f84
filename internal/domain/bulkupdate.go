package domain

import (
	"encoding/json"
	"time"
)

// CalendarBulkUpdate append-only запись аудита пакетного изменения календаря
// Снимки значений до и после хранятся как JSON по датам
type CalendarBulkUpdate struct {
	ID        int64
	ListingID int64
	UserID    int64

	StartDate time.Time
	EndDate   time.Time

	UpdateType string

	PreviousValues json.RawMessage
	NewValues      json.RawMessage

	Notes *string

	CreatedAt time.Time
}
