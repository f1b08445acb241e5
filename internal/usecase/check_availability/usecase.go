package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	roomRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/room"
)

// UseCase use case проверки доступности комнаты на интервал дат.
// Результат не кэшируется: каждая проверка идет в хранилище заново —
// устаревший ответ здесь означает двойное бронирование.
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, roomRepo RoomRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		logger:      logger,
	}
}

// Execute проверяет полуоткрытый интервал [checkIn, checkOut) на пересечения
// с активными бронированиями комнаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: room=%d, dates=%s..%s",
		req.RoomID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	if _, err := domain.Nights(req.CheckIn, req.CheckOut); err != nil {
		uc.logger.Warn("CheckAvailability: invalid date range for room=%d", req.RoomID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}

	if _, err := uc.roomRepo.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CheckAvailability: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	checkIn := domain.NormalizeDate(req.CheckIn)
	checkOut := domain.NormalizeDate(req.CheckOut)

	conflicts, err := uc.bookingRepo.FindOverlapping(ctx, req.RoomID, checkIn, checkOut, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to check overlaps: %v", err)
		return nil, fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
	}

	numbers := domain.ConflictNumbers(conflicts)
	uc.logger.Info("CheckAvailability: room=%d available=%v, conflicts=%v",
		req.RoomID, len(numbers) == 0, numbers)

	return &Response{
		Available: len(numbers) == 0,
		Conflicts: numbers,
	}, nil
}
