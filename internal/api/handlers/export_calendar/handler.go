package export_calendar

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Hotel-BookingService/internal/api/handlers"
	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/internal/service/bookings/models"
	"github.com/m04kA/Hotel-BookingService/internal/service/rooms"
	"github.com/m04kA/Hotel-BookingService/pkg/ical"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgRoomNotFound  = "комната не найдена"

	uidDomain = "hotel-bookingservice"
)

type Handler struct {
	bookingService BookingService
	roomService    RoomService
	logger         Logger
}

func NewHandler(bookingService BookingService, roomService RoomService, logger Logger) *Handler {
	return &Handler{
		bookingService: bookingService,
		roomService:    roomService,
		logger:         logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/calendar.ics
// Экспортирует активные бронирования комнаты для внешних календарей
// (Airbnb, Booking.com, Google Calendar)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomIDStr := vars["roomId"]

	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/calendar.ics - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	room, err := h.roomService.GetByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/calendar.ics - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("GET /rooms/{id}/calendar.ics - Failed to get room: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Только активные брони: отменённые не должны блокировать даты во
	// внешних календарях
	list, err := h.bookingService.List(r.Context(), &models.ListBookingsRequest{RoomID: &roomID})
	if err != nil {
		h.logger.Error("GET /rooms/{id}/calendar.ics - Failed to list bookings: room_id=%d, error=%v",
			roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	cal := ical.Calendar{
		Name:   fmt.Sprintf("Room %s", room.RoomNumber),
		Events: make([]ical.Event, 0, len(list.Bookings)),
	}

	for _, b := range list.Bookings {
		checkIn, err := time.Parse(domain.DateFormat, b.CheckIn)
		if err != nil {
			h.logger.Error("GET /rooms/{id}/calendar.ics - Bad check-in date for booking #%d: %v",
				b.BookingNumber, err)
			continue
		}
		checkOut, err := time.Parse(domain.DateFormat, b.CheckOut)
		if err != nil {
			h.logger.Error("GET /rooms/{id}/calendar.ics - Bad check-out date for booking #%d: %v",
				b.BookingNumber, err)
			continue
		}

		cal.Events = append(cal.Events, ical.Event{
			UID:         ical.EventUID(b.BookingNumber, uidDomain),
			Summary:     fmt.Sprintf("Booking #%d: %s", b.BookingNumber, b.GuestName),
			Description: fmt.Sprintf("%d nights, %s", b.Nights, b.Status),
			Start:       checkIn,
			End:         checkOut,
			CreatedAt:   b.CreatedAt,
		})
	}

	h.logger.Info("GET /rooms/{id}/calendar.ics - Calendar exported: room_id=%d, events=%d",
		roomID, len(cal.Events))

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="room-%s.ics"`, room.RoomNumber))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(cal.Render()))
}
