package move_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Hotel-BookingService/internal/api/handlers"
	moveBooking "github.com/m04kA/Hotel-BookingService/internal/usecase/move_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBookingNotFound    = "бронирование не найдено"
	msgRoomNotFound       = "комната не найдена"
	msgRoomUnavailable    = "комната занята на выбранные даты"
	msgCannotMove         = "бронирование не может быть перенесено"
)

type Handler struct {
	useCase MoveBookingUseCase
	logger  Logger
}

func NewHandler(useCase MoveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req MoveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/move - Failed to parse target date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var unavailable *moveBooking.RoomUnavailableError

		switch {
		case errors.As(err, &unavailable):
			h.logger.Warn("PATCH /bookings/{id}/move - Room unavailable: booking_id=%d, room_id=%d, conflicts=%v",
				bookingID, req.TargetRoomID, unavailable.Conflicts)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Code:      http.StatusConflict,
				Message:   msgRoomUnavailable,
				Conflicts: unavailable.Conflicts,
			})

		case errors.Is(err, moveBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/move - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, moveBooking.ErrRoomNotFound):
			h.logger.Warn("PATCH /bookings/{id}/move - Target room not found: room_id=%d", req.TargetRoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, moveBooking.ErrCannotMove):
			h.logger.Warn("PATCH /bookings/{id}/move - Cannot move: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotMove)

		case errors.Is(err, moveBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/move - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/move - Failed to move booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/move - Booking moved successfully: booking_id=%d, room_id=%d",
		bookingID, result.RoomID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
