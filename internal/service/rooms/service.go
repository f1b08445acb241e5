package rooms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	roomRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/room"
	"github.com/m04kA/Hotel-BookingService/internal/service/rooms/models"
)

// Service сервис для работы с комнатами
type Service struct {
	roomRepo RoomRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса комнат
func NewService(roomRepo RoomRepository, logger Logger) *Service {
	return &Service{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// Create создает новую комнату (админ-операция)
func (s *Service) Create(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Create: creating room number=%s, type=%s", req.RoomNumber, req.Type)

	if req.RoomNumber == "" {
		s.logger.Warn("Create: empty room number")
		return nil, fmt.Errorf("%w: roomNumber is required", ErrInvalidInput)
	}
	if req.BasePrice < 0 {
		s.logger.Warn("Create: negative basePrice=%.2f for room number=%s", req.BasePrice, req.RoomNumber)
		return nil, fmt.Errorf("%w: basePrice must be non-negative", ErrInvalidInput)
	}
	if req.MaxOccupancy < 1 {
		s.logger.Warn("Create: invalid maxOccupancy=%d for room number=%s", req.MaxOccupancy, req.RoomNumber)
		return nil, fmt.Errorf("%w: maxOccupancy must be at least 1", ErrInvalidInput)
	}
	if err := validateSpecialPrices(req.SpecialPrices); err != nil {
		s.logger.Warn("Create: invalid special prices for room number=%s: %v", req.RoomNumber, err)
		return nil, err
	}

	room, err := s.roomRepo.Create(ctx, req.ToDomainRoom())
	if err != nil {
		if errors.Is(err, roomRepo.ErrDuplicateRoomNumber) {
			s.logger.Warn("Create: room number=%s already exists", req.RoomNumber)
			return nil, ErrRoomAlreadyExists
		}
		s.logger.Error("Create: repository error for room number=%s: %v", req.RoomNumber, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: room created id=%d, number=%s", room.ID, room.RoomNumber)
	return models.FromDomainRoom(room), nil
}

// GetByID получает комнату по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RoomResponse, error) {
	s.logger.Info("GetByID: fetching room id=%d", id)

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("GetByID: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetByID: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRoom(room), nil
}

// List получает список всех комнат
func (s *Service) List(ctx context.Context) (*models.RoomListResponse, error) {
	s.logger.Info("List: fetching rooms")

	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rooms", len(rooms))
	return models.FromDomainRoomList(rooms), nil
}

// UpdatePricing обновляет базовый тариф и специальные цены комнаты
func (s *Service) UpdatePricing(ctx context.Context, id int64, req *models.UpdatePricingRequest) (*models.RoomResponse, error) {
	s.logger.Info("UpdatePricing: room id=%d, basePrice=%.2f, specialPrices=%d entries",
		id, req.BasePrice, len(req.SpecialPrices))

	if req.BasePrice < 0 {
		s.logger.Warn("UpdatePricing: negative basePrice=%.2f for room id=%d", req.BasePrice, id)
		return nil, fmt.Errorf("%w: basePrice must be non-negative", ErrInvalidInput)
	}
	if err := validateSpecialPrices(req.SpecialPrices); err != nil {
		s.logger.Warn("UpdatePricing: invalid special prices for room id=%d: %v", id, err)
		return nil, err
	}

	room, err := s.roomRepo.UpdatePricing(ctx, id, req.BasePrice, req.SpecialPrices)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("UpdatePricing: room id=%d not found", id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("UpdatePricing: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdatePricing - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePricing: room id=%d pricing updated", id)
	return models.FromDomainRoom(room), nil
}

var weekdayKeys = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
}

// validSpecialPriceKey принимает дату YYYY-MM-DD или день недели в нижнем регистре
func validSpecialPriceKey(key string) bool {
	if _, ok := weekdayKeys[key]; ok {
		return true
	}
	_, err := time.Parse(domain.DateFormat, key)
	return err == nil
}

func validateSpecialPrices(prices map[string]float64) error {
	for key, price := range prices {
		if price < 0 {
			return fmt.Errorf("%w: special price for %q must be non-negative", ErrInvalidInput, key)
		}
		if !validSpecialPriceKey(key) {
			return fmt.Errorf("%w: special price key %q must be a date or a weekday", ErrInvalidInput, key)
		}
	}
	return nil
}
