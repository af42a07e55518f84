package update_day

import (
	"context"

	calendarModels "github.com/bedbees/BB-CalendarService/internal/service/calendar/models"
)

type CalendarService interface {
	UpdateDay(ctx context.Context, req *calendarModels.UpdateDayRequest) (*calendarModels.DayProjection, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
