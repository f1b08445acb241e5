package create_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/Hotel-BookingService/internal/api/handlers"
	"github.com/m04kA/Hotel-BookingService/internal/service/rooms"
	"github.com/m04kA/Hotel-BookingService/internal/service/rooms/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRoom        = "некорректные данные комнаты"
	msgRoomExists         = "комната с таким номером уже существует"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrRoomAlreadyExists):
			h.logger.Warn("POST /rooms - Room already exists: number=%s", req.RoomNumber)
			handlers.RespondError(w, http.StatusConflict, msgRoomExists)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /rooms - Invalid room data: number=%s, error=%v", req.RoomNumber, err)
			handlers.RespondBadRequest(w, msgInvalidRoom)

		default:
			h.logger.Error("POST /rooms - Failed to create room: number=%s, error=%v", req.RoomNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms - Room created successfully: id=%d, number=%s", result.ID, result.RoomNumber)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
