package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/room"
	"github.com/m04kA/Hotel-BookingService/internal/integrations/mailer"
)

// maxSequenceRetries число попыток назначить booking_number при конфликте
// уникального индекса (конкурентное создание)
const maxSequenceRetries = 3

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	txManager   TransactionManager
	publisher   EventPublisher
	mailer      Mailer

	vatRate     float64 // процент НДС из конфигурации
	numberStart int64   // первый человекочитаемый номер брони (1001)

	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	mailer Mailer,
	vatRate float64,
	numberStart int64,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		txManager:    txManager,
		publisher:    publisher,
		mailer:       mailer,
		vatRate:      vatRate,
		numberStart:  numberStart,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет сценарий создания бронирования.
//
// Проверка доступности, расчет цены, назначение номера и вставка выполняются
// в одной serializable транзакции: два одновременных запроса на одну комнату
// и даты не могут оба пройти проверку пересечений. Назначение booking_number
// защищено уникальным индексом — при конфликте транзакция повторяется
// целиком с перечитанным максимумом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room=%d, guest=%s, dates=%s..%s, tourist=%v",
		req.RoomID, req.Guest.Name,
		req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat),
		req.IsTourist)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Количество ночей; здесь же отсекается checkOut <= checkIn
	nights, err := domain.Nights(req.CheckIn, req.CheckOut)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid date range %s..%s",
			req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	if nights > domain.MaxNightsPerBooking {
		return nil, fmt.Errorf("%w: stay is longer than %d nights", ErrInvalidInput, domain.MaxNightsPerBooking)
	}

	checkIn := domain.NormalizeDate(req.CheckIn)
	checkOut := domain.NormalizeDate(req.CheckOut)

	var result *domain.Booking
	var roomNumber string

	// 3. Создание с повтором при гонке за booking_number
	for attempt := 0; attempt < maxSequenceRetries; attempt++ {
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 3.1. Комната
			room, err := uc.roomRepo.GetByID(txCtx, req.RoomID)
			if err != nil {
				if errors.Is(err, roomRepo.ErrRoomNotFound) {
					uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
					return ErrRoomNotFound
				}
				uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
				return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
			}
			roomNumber = room.RoomNumber

			// 3.2. Проверка пересечений с блокировкой строк (FOR UPDATE).
			// Проверка выполняется заново на каждой попытке — доступность
			// никогда не кэшируется
			conflicts, err := uc.bookingRepo.FindOverlapping(txCtx, req.RoomID, checkIn, checkOut, nil)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to check overlaps: %v", err)
				return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
			}
			if len(conflicts) > 0 {
				numbers := domain.ConflictNumbers(conflicts)
				uc.logger.Warn("CreateBooking: room id=%d unavailable, conflicts=%v", req.RoomID, numbers)
				return &RoomUnavailableError{Conflicts: numbers}
			}

			// 3.3. Ценовой якорь: либо от клиента, либо из цен комнаты
			anchor := domain.AnchorBasePrice
			value := room.AverageBaseRate(checkIn, nights)
			if req.PriceAnchor != nil {
				anchor = *req.PriceAnchor
				value = *req.PriceValue
			}

			prices, err := domain.DerivePrices(anchor, value, nights, uc.vatRate, req.IsTourist)
			if err != nil {
				uc.logger.Warn("CreateBooking: price derivation failed: %v", err)
				return fmt.Errorf("%w: %v", ErrInvalidPriceInput, err)
			}

			// 3.4. Следующий номер брони: max+1, минимум numberStart
			maxNumber, err := uc.bookingRepo.MaxBookingNumber(txCtx)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get max booking number: %v", err)
				return fmt.Errorf("%w: failed to get max booking number: %v", ErrInternal, err)
			}
			number := maxNumber + 1
			if number < uc.numberStart {
				number = uc.numberStart
			}

			booking := &domain.Booking{
				BookingNumber: number,
				RoomID:        req.RoomID,
				Guest:         req.Guest,
				CheckIn:       checkIn,
				CheckOut:      checkOut,
				Nights:        nights,
				IsTourist:     req.IsTourist,
				BasePrice:     prices.BasePrice,
				PricePerNight: prices.PricePerNight,
				TotalPrice:    prices.TotalPrice,
				PaymentStatus: domain.PaymentPending,
				Status:        domain.StayConfirmed,
				Notes:         req.Notes,
			}

			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				return err
			}

			result = created
			return nil
		})

		// Конфликт уникальности номера — перечитываем максимум и пробуем снова
		if errors.Is(err, bookingRepo.ErrDuplicateBookingNumber) {
			uc.logger.Warn("CreateBooking: booking number collision, attempt %d/%d", attempt+1, maxSequenceRetries)
			continue
		}
		break
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateBookingNumber) {
			uc.logger.Error("CreateBooking: booking number retries exhausted: %v", err)
			return nil, fmt.Errorf("%w: retries exhausted: %v", ErrSequenceAssignment, err)
		}
		if errors.Is(err, ErrRoomNotFound) || errors.Is(err, ErrRoomUnavailable) ||
			errors.Is(err, ErrInvalidPriceInput) || errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking #%d (id=%d) for room=%d",
		result.BookingNumber, result.ID, result.RoomID)

	// 4. Уведомления — fire-and-forget, ошибки не фатальны
	uc.notify(ctx, result, roomNumber)

	return fromDomain(result), nil
}

// notify публикует событие и отправляет письмо-подтверждение
func (uc *UseCase) notify(ctx context.Context, b *domain.Booking, roomNumber string) {
	event := events.BookingCreatedEvent{
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		RoomID:        b.RoomID,
		RoomNumber:    roomNumber,
		GuestName:     b.Guest.Name,
		GuestEmail:    b.Guest.Email,
		CheckIn:       b.CheckIn.Format(domain.DateFormat),
		CheckOut:      b.CheckOut.Format(domain.DateFormat),
		Nights:        b.Nights,
		TotalPrice:    b.TotalPrice,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
	if err := uc.publisher.PublishBookingCreated(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish booking.created for #%d: %v", b.BookingNumber, err)
	}

	if b.Guest.Email != "" {
		email := mailer.EmailRequest{
			To:            b.Guest.Email,
			Template:      mailer.TemplateBookingConfirmation,
			Subject:       fmt.Sprintf("Booking confirmation #%d", b.BookingNumber),
			GuestName:     b.Guest.Name,
			BookingNumber: b.BookingNumber,
			RoomNumber:    roomNumber,
			CheckIn:       b.CheckIn.Format(domain.DateFormat),
			CheckOut:      b.CheckOut.Format(domain.DateFormat),
			TotalPrice:    b.TotalPrice,
		}
		if err := uc.mailer.SendWithGracefulDegradation(ctx, email); err != nil {
			uc.logger.Warn("CreateBooking: confirmation email skipped for #%d: %v", b.BookingNumber, err)
		}
	}
}
