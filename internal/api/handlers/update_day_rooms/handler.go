package update_day_rooms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bedbees/BB-CalendarService/internal/api/handlers"
	"github.com/bedbees/BB-CalendarService/internal/api/middleware"
	updateDayRooms "github.com/bedbees/BB-CalendarService/internal/usecase/update_day_rooms"
)

const (
	msgInvalidListingID   = "некорректный ID листинга"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные запроса"
	msgListingNotFound    = "листинг не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase UpdateDayRoomsUseCase
	logger  Logger
}

func NewHandler(useCase UpdateDayRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/listings/{listingId}/calendar/day/rooms
// Элементы применяются поштучно; при частичном отказе ответ - 400
// с перечислением отклоненных элементов в errors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	listingID, err := strconv.ParseInt(vars["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /listings/{id}/calendar/day/rooms - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /listings/{id}/calendar/day/rooms - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateDayRoomsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /listings/{id}/calendar/day/rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(listingID, userID)
	if err != nil {
		h.logger.Warn("PATCH /listings/{id}/calendar/day/rooms - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateDayRooms.ErrInvalidInput):
			h.logger.Warn("PATCH /listings/{id}/calendar/day/rooms - Invalid input: listing_id=%d, error=%v", listingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateDayRooms.ErrListingNotFound):
			h.logger.Warn("PATCH /listings/{id}/calendar/day/rooms - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, updateDayRooms.ErrAccessDenied):
			h.logger.Warn("PATCH /listings/{id}/calendar/day/rooms - Access denied: listing_id=%d, user_id=%d", listingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /listings/{id}/calendar/day/rooms - Failed to update rooms: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Частичный отказ сигнализируется статусом: тело с поэлементным
	// отчетом одно и то же, но при наличии отказов ответ - 400
	if result.HasErrors() {
		h.logger.Warn("PATCH /listings/{id}/calendar/day/rooms - Partial failure: listing_id=%d, updated=%d, rejected=%d",
			listingID, len(result.Updated), len(result.Errors))
		handlers.RespondJSON(w, http.StatusBadRequest, result)
		return
	}

	h.logger.Info("PATCH /listings/{id}/calendar/day/rooms - Rooms updated: listing_id=%d, updated=%d",
		listingID, len(result.Updated))
	handlers.RespondJSON(w, http.StatusOK, result)
}
