package get_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bedbees/BB-CalendarService/internal/api/handlers"
	"github.com/bedbees/BB-CalendarService/internal/api/middleware"
	"github.com/bedbees/BB-CalendarService/internal/domain"
	"github.com/bedbees/BB-CalendarService/internal/service/calendar"
	calendarModels "github.com/bedbees/BB-CalendarService/internal/service/calendar/models"
)

const (
	msgInvalidListingID = "некорректный ID листинга"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgMissingDates     = "параметры from и to обязательны"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "дата from должна быть раньше даты to"
	msgListingNotFound  = "листинг не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/listings/{listingId}/calendar
// Query params: from (required, YYYY-MM-DD), to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	listingID, err := strconv.ParseInt(vars["listingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/calendar - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /listings/{id}/calendar - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /listings/{id}/calendar - Missing from/to params: listing_id=%d", listingID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/calendar - Invalid from date %q: %v", fromStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /listings/{id}/calendar - Invalid to date %q: %v", toStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetCalendar(r.Context(), &calendarModels.GetCalendarRequest{
		ListingID: listingID,
		UserID:    userID,
		From:      from,
		To:        to,
	})
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidDateRange):
			h.logger.Warn("GET /listings/{id}/calendar - Invalid date range: listing_id=%d", listingID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, calendar.ErrListingNotFound):
			h.logger.Warn("GET /listings/{id}/calendar - Listing not found: listing_id=%d", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, calendar.ErrAccessDenied):
			h.logger.Warn("GET /listings/{id}/calendar - Access denied: listing_id=%d, user_id=%d", listingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /listings/{id}/calendar - Failed to get calendar: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /listings/{id}/calendar - Calendar retrieved: listing_id=%d, days=%d",
		listingID, len(result.Calendar))
	handlers.RespondJSON(w, http.StatusOK, result)
}
