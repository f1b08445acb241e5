package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Hotel-BookingService/internal/api/handlers"
	"github.com/m04kA/Hotel-BookingService/internal/domain"
	createBooking "github.com/m04kA/Hotel-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange   = "дата выезда должна быть позже даты заезда"
	msgInvalidPrice       = "некорректная цена или ценовой якорь"
	msgInvalidInput       = "некорректные данные бронирования"
	msgRoomNotFound       = "комната не найдена"
	msgRoomUnavailable    = "комната занята на выбранные даты"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат и якоря)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, domain.ErrInvalidPriceInput) {
			handlers.RespondBadRequest(w, msgInvalidPrice)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var unavailable *createBooking.RoomUnavailableError

		switch {
		case errors.As(err, &unavailable):
			h.logger.Warn("POST /bookings - Room unavailable: room_id=%d, conflicts=%v",
				req.RoomID, unavailable.Conflicts)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Code:      http.StatusConflict,
				Message:   msgRoomUnavailable,
				Conflicts: unavailable.Conflicts,
			})

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrInvalidDateRange):
			h.logger.Warn("POST /bookings - Invalid date range: room_id=%d", req.RoomID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, createBooking.ErrInvalidPriceInput):
			h.logger.Warn("POST /bookings - Invalid price input: room_id=%d", req.RoomID)
			handlers.RespondBadRequest(w, msgInvalidPrice)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: room_id=%d, error=%v", req.RoomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: room_id=%d, error=%v",
				req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_number=%d, room_id=%d",
		result.BookingNumber, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
