package get_room_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Hotel-BookingService/internal/api/handlers"
	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/internal/service/bookings"
	"github.com/m04kA/Hotel-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/bookings
// Query params: startDate, endDate, status, includeInactive (опционально).
// Основной источник данных для сетки календаря в админке.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomIDStr := vars["roomId"]

	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/bookings - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()
	serviceReq := &models.ListBookingsRequest{RoomID: &roomID}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /rooms/{id}/bookings - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		serviceReq.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /rooms/{id}/bookings - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		serviceReq.EndDate = &endDate
	}

	if statusStr := query.Get("status"); statusStr != "" {
		serviceReq.Status = &statusStr
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			h.logger.Warn("GET /rooms/{id}/bookings - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		serviceReq.IncludeInactive = includeInactive
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/bookings - Invalid filter: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /rooms/{id}/bookings - Failed to list bookings: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/bookings - Bookings retrieved successfully: room_id=%d, count=%d",
		roomID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
