package update_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bedbees/BB-CalendarService/internal/api/handlers"
	"github.com/bedbees/BB-CalendarService/internal/api/middleware"
	"github.com/bedbees/BB-CalendarService/internal/service/calendar"
)

const (
	msgInvalidListingID   = "некорректный ID листинга"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus      = "некорректный статус дня, ожидается OPEN, CLOSED или BLOCKED"
	msgNoFieldsToUpdate   = "не указано ни одного поля для обновления"
	msgListingNotFound    = "листинг не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/listings/{listingId}/calendar/day
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	listingID, err := strconv.ParseInt(vars["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /listings/{id}/calendar/day - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /listings/{id}/calendar/day - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /listings/{id}/calendar/day - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(listingID, userID)
	if err != nil {
		h.logger.Warn("PATCH /listings/{id}/calendar/day - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	day, err := h.service.UpdateDay(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidStatus):
			h.logger.Warn("PATCH /listings/{id}/calendar/day - Invalid status: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("PATCH /listings/{id}/calendar/day - No fields to update: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgNoFieldsToUpdate)

		case errors.Is(err, calendar.ErrListingNotFound):
			h.logger.Warn("PATCH /listings/{id}/calendar/day - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, calendar.ErrAccessDenied):
			h.logger.Warn("PATCH /listings/{id}/calendar/day - Access denied: listing_id=%d, user_id=%d", listingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /listings/{id}/calendar/day - Failed to update day: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /listings/{id}/calendar/day - Day updated: listing_id=%d, date=%s", listingID, day.Date)
	handlers.RespondJSON(w, http.StatusOK, day)
}
