package bulk_update

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bedbees/BB-CalendarService/internal/api/handlers"
	"github.com/bedbees/BB-CalendarService/internal/api/middleware"
	bulkUpdate "github.com/bedbees/BB-CalendarService/internal/usecase/bulk_update"
)

const (
	msgInvalidListingID   = "некорректный ID листинга"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange   = "дата from должна быть раньше даты to"
	msgInvalidExpression  = "некорректное значение-выражение"
	msgInvalidInput       = "некорректные данные запроса"
	msgNoMatchingDates    = "ни одна дата периода не подходит под фильтр"
	msgListingNotFound    = "листинг не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase BulkUpdateUseCase
	logger  Logger
}

func NewHandler(useCase BulkUpdateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/listings/{listingId}/calendar/bulk
// Пары (дата, тип комнаты) применяются поштучно; при частичном отказе
// ответ - 207 с перечислением отклоненных пар в errors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	listingID, err := strconv.ParseInt(vars["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /listings/{id}/calendar/bulk - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /listings/{id}/calendar/bulk - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BulkUpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /listings/{id}/calendar/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(listingID, userID)
	if err != nil {
		h.logger.Warn("POST /listings/{id}/calendar/bulk - Failed to parse request: %v", err)
		var parseErr *time.ParseError
		switch {
		case errors.Is(err, bulkUpdate.ErrInvalidExpression):
			handlers.RespondBadRequest(w, msgInvalidExpression)
		case errors.As(err, &parseErr):
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bulkUpdate.ErrInvalidDateRange):
			h.logger.Warn("POST /listings/{id}/calendar/bulk - Invalid date range: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, bulkUpdate.ErrInvalidExpression):
			h.logger.Warn("POST /listings/{id}/calendar/bulk - Invalid expression: listing_id=%d, error=%v", listingID, err)
			handlers.RespondBadRequest(w, msgInvalidExpression)

		case errors.Is(err, bulkUpdate.ErrInvalidInput):
			h.logger.Warn("POST /listings/{id}/calendar/bulk - Invalid input: listing_id=%d, error=%v", listingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bulkUpdate.ErrNoMatchingDates):
			h.logger.Warn("POST /listings/{id}/calendar/bulk - No matching dates: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgNoMatchingDates)

		case errors.Is(err, bulkUpdate.ErrListingNotFound):
			h.logger.Warn("POST /listings/{id}/calendar/bulk - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, bulkUpdate.ErrAccessDenied):
			h.logger.Warn("POST /listings/{id}/calendar/bulk - Access denied: listing_id=%d, user_id=%d", listingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /listings/{id}/calendar/bulk - Failed to apply bulk update: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Частичный отказ сигнализируется статусом 207: часть пар применена,
	// часть перечислена в errors
	if result.HasErrors() {
		h.logger.Warn("POST /listings/{id}/calendar/bulk - Partial failure: listing_id=%d, dates=%d, rejected=%d",
			listingID, len(result.UpdatedDates), len(result.Errors))
		handlers.RespondJSON(w, http.StatusMultiStatus, result)
		return
	}

	h.logger.Info("POST /listings/{id}/calendar/bulk - Bulk update applied: listing_id=%d, dates=%d",
		listingID, len(result.UpdatedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
