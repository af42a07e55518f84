package get_calendar

import (
	"context"

	calendarModels "github.com/bedbees/BB-CalendarService/internal/service/calendar/models"
)

type CalendarService interface {
	GetCalendar(ctx context.Context, req *calendarModels.GetCalendarRequest) (*calendarModels.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
