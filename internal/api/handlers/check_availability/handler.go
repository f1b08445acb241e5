package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Hotel-BookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/Hotel-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidRoomID    = "некорректный ID комнаты"
	msgInvalidParams    = "некорректные параметры запроса, ожидаются checkIn и checkOut в формате YYYY-MM-DD"
	msgInvalidDateRange = "дата выезда должна быть позже даты заезда"
	msgRoomNotFound     = "комната не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability
// Query params: checkIn, checkOut (обязательные), excludeBookingId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomIDStr := vars["roomId"]

	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(roomID, query.Get("checkIn"), query.Get("checkOut"), query.Get("excludeBookingId"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/availability - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidDateRange):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid date range: room_id=%d", roomID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to check availability: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/availability - Availability checked: room_id=%d, available=%v",
		roomID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
