package bulk_update

import (
	"context"

	bulkUpdate "github.com/bedbees/BB-CalendarService/internal/usecase/bulk_update"
)

type BulkUpdateUseCase interface {
	Execute(ctx context.Context, req *bulkUpdate.Request) (*bulkUpdate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
