package move_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/room"
)

// UseCase use case переноса бронирования: предложение → проверка → фиксация.
// Конфликт означает полный откат — частичное состояние не коммитится,
// и календарь в UI возвращает бронь на исходную позицию.
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	txManager   TransactionManager
	publisher   EventPublisher
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute выполняет перенос бронирования на целевую комнату и дату.
// Новый интервал — сдвиг исходного так, чтобы заезд совпал с targetDate;
// количество ночей сохраняется. Проверка пересечений исключает само
// переносимое бронирование и выполняется в той же serializable транзакции,
// что и запись.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveBooking: booking=%d, targetRoom=%d, targetDate=%s",
		req.BookingID, req.TargetRoomID, req.TargetDate.Format(domain.DateFormat))

	if req.BookingID <= 0 || req.TargetRoomID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and targetRoomID must be positive", ErrInvalidInput)
	}
	if req.TargetDate.IsZero() {
		return nil, fmt.Errorf("%w: targetDate is required", ErrInvalidInput)
	}

	var result *domain.Booking
	var fromRoomID int64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("MoveBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("MoveBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeMoved() {
			uc.logger.Warn("MoveBooking: booking #%d cannot be moved, status=%s",
				booking.BookingNumber, booking.Status)
			return ErrCannotMove
		}

		if _, err := uc.roomRepo.GetByID(txCtx, req.TargetRoomID); err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("MoveBooking: target room id=%d not found", req.TargetRoomID)
				return ErrRoomNotFound
			}
			uc.logger.Error("MoveBooking: failed to get target room id=%d: %v", req.TargetRoomID, err)
			return fmt.Errorf("%w: failed to get target room: %v", ErrInternal, err)
		}

		// Сдвигаем интервал: заезд на целевую дату, ночи сохраняются
		newCheckIn := domain.NormalizeDate(req.TargetDate)
		newCheckOut := newCheckIn.AddDate(0, 0, booking.Nights)

		conflicts, err := uc.bookingRepo.FindOverlapping(txCtx, req.TargetRoomID, newCheckIn, newCheckOut, &booking.ID)
		if err != nil {
			uc.logger.Error("MoveBooking: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			numbers := domain.ConflictNumbers(conflicts)
			uc.logger.Warn("MoveBooking: target room id=%d unavailable, conflicts=%v", req.TargetRoomID, numbers)
			return &RoomUnavailableError{Conflicts: numbers}
		}

		if err := uc.bookingRepo.Move(txCtx, booking.ID, req.TargetRoomID, newCheckIn, newCheckOut); err != nil {
			if errors.Is(err, bookingRepo.ErrCannotMove) {
				return ErrCannotMove
			}
			uc.logger.Error("MoveBooking: failed to move booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to move booking: %v", ErrInternal, err)
		}

		fromRoomID = booking.RoomID
		booking.RoomID = req.TargetRoomID
		booking.CheckIn = newCheckIn
		booking.CheckOut = newCheckOut
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrRoomNotFound) ||
			errors.Is(err, ErrRoomUnavailable) || errors.Is(err, ErrCannotMove) ||
			errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("MoveBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("MoveBooking: booking #%d moved to room=%d, dates=%s..%s",
		result.BookingNumber, result.RoomID,
		result.CheckIn.Format(domain.DateFormat), result.CheckOut.Format(domain.DateFormat))

	event := events.BookingMovedEvent{
		BookingID:     result.ID,
		BookingNumber: result.BookingNumber,
		FromRoomID:    fromRoomID,
		ToRoomID:      result.RoomID,
		CheckIn:       result.CheckIn.Format(domain.DateFormat),
		CheckOut:      result.CheckOut.Format(domain.DateFormat),
	}
	if err := uc.publisher.PublishBookingMoved(ctx, event); err != nil {
		uc.logger.Error("MoveBooking: failed to publish booking.moved for #%d: %v", result.BookingNumber, err)
	}

	return fromDomain(result), nil
}
