package update_day_rooms

import (
	"context"

	updateDayRooms "github.com/bedbees/BB-CalendarService/internal/usecase/update_day_rooms"
)

type UpdateDayRoomsUseCase interface {
	Execute(ctx context.Context, req *updateDayRooms.Request) (*updateDayRooms.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
