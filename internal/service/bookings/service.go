package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/Hotel-BookingService/internal/integrations/mailer"
	"github.com/m04kA/Hotel-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo          BookingRepository
	roomRepo             RoomRepository
	publisher            EventPublisher
	mailer               Mailer
	timeProvider         TimeProvider
	freeCancellationDays int
	vatRate              float64
	logger               Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	publisher EventPublisher,
	mailerClient Mailer,
	freeCancellationDays int,
	vatRate float64,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:          bookingRepo,
		roomRepo:             roomRepo,
		publisher:            publisher,
		mailer:               mailerClient,
		timeProvider:         RealTimeProvider{},
		freeCancellationDays: freeCancellationDays,
		vatRate:              vatRate,
		logger:               logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с гибкой фильтрацией
//
// Примеры использования:
// - Все активные бронирования: List(ctx, &ListBookingsRequest{})
// - Бронирования комнаты: указать RoomID
// - Бронирования за период: StartDate и EndDate (полуоткрытый интервал)
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.RoomID != nil {
		logMsg += fmt.Sprintf(", room=%d", *req.RoomID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и рассчитывает штраф за отмену.
// За freeCancellationDays и более дней до заезда отмена бесплатна,
// позже удерживается полная стоимость. Повторная отмена возвращает
// ErrAlreadyCancelled, состояние брони при этом не меняется.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.CancelBookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking #%d is already cancelled", booking.BookingNumber)
		return nil, ErrAlreadyCancelled
	}
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking #%d cannot be cancelled, status=%s", booking.BookingNumber, booking.Status)
		return nil, ErrNotCancellable
	}

	now := s.timeProvider.Now()
	if domain.IsStayUnderway(booking.CheckIn, now) {
		s.logger.Warn("Cancel: booking #%d stay already underway", booking.BookingNumber)
		return nil, ErrNotCancellable
	}

	quote := domain.EvaluateCancellation(booking.CheckIn, now, booking.TotalPrice, s.freeCancellationDays)
	cancelledAt := now.UTC()

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.Reason, quote.Fee, cancelledAt); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			// Кто-то успел отменить между чтением и записью
			s.logger.Warn("Cancel: booking id=%d lost cancellation race", bookingID)
			return nil, ErrAlreadyCancelled
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking #%d cancelled, fee=%.2f, daysUntilCheckIn=%d",
		booking.BookingNumber, quote.Fee, quote.DaysUntilCheckIn)

	s.notifyCancelled(ctx, booking, quote, cancelledAt)

	return &models.CancelBookingResponse{
		ID:               booking.ID,
		BookingNumber:    booking.BookingNumber,
		Status:           string(domain.StayCancelled),
		CancellationFee:  quote.Fee,
		IsFullRefund:     quote.IsFullRefund,
		DaysUntilCheckIn: quote.DaysUntilCheckIn,
		CancelledAt:      cancelledAt.Format(time.RFC3339),
	}, nil
}

// UpdatePrice пересчитывает все три поля цены бронирования от указанного якоря
func (s *Service) UpdatePrice(ctx context.Context, bookingID int64, req *models.UpdatePriceRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdatePrice: booking id=%d, anchor=%s, value=%.2f", bookingID, req.Anchor, req.Value)

	anchor, err := domain.ParsePriceAnchor(req.Anchor)
	if err != nil {
		s.logger.Warn("UpdatePrice: invalid anchor=%s for booking id=%d", req.Anchor, bookingID)
		return nil, fmt.Errorf("%w: invalid anchor %q", ErrInvalidPriceInput, req.Anchor)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdatePrice: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdatePrice: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdatePrice - repository error: %v", ErrInternal, err)
	}

	prices, err := domain.DerivePrices(anchor, req.Value, booking.Nights, s.vatRate, booking.IsTourist)
	if err != nil {
		s.logger.Warn("UpdatePrice: invalid price input for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPriceInput, err)
	}

	if err := s.bookingRepo.UpdatePrices(ctx, bookingID, prices); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdatePrice: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdatePrice - repository error: %v", ErrInternal, err)
	}

	booking.BasePrice = prices.BasePrice
	booking.PricePerNight = prices.PricePerNight
	booking.TotalPrice = prices.TotalPrice

	s.logger.Info("UpdatePrice: booking #%d prices updated: base=%.2f, perNight=%.2f, total=%.2f",
		booking.BookingNumber, prices.BasePrice, prices.PricePerNight, prices.TotalPrice)
	return models.FromDomainBooking(booking), nil
}

// notifyCancelled публикует событие отмены и отправляет гостю письмо.
// Ошибки доставки логируются и не влияют на результат отмены.
func (s *Service) notifyCancelled(ctx context.Context, booking *domain.Booking, quote domain.CancellationQuote, cancelledAt time.Time) {
	event := events.BookingCancelledEvent{
		BookingID:       booking.ID,
		BookingNumber:   booking.BookingNumber,
		GuestEmail:      booking.Guest.Email,
		CancellationFee: quote.Fee,
		IsFullRefund:    quote.IsFullRefund,
		CancelledAt:     cancelledAt.Format(time.RFC3339),
	}
	if err := s.publisher.PublishBookingCancelled(ctx, event); err != nil {
		s.logger.Error("Cancel: failed to publish booking.cancelled for #%d: %v", booking.BookingNumber, err)
	}

	if booking.Guest.Email == "" {
		return
	}

	roomNumber := ""
	if room, err := s.roomRepo.GetByID(ctx, booking.RoomID); err == nil {
		roomNumber = room.RoomNumber
	} else {
		s.logger.Warn("Cancel: failed to get room id=%d for email: %v", booking.RoomID, err)
	}

	emailReq := mailer.EmailRequest{
		To:            booking.Guest.Email,
		Template:      mailer.TemplateBookingCancellation,
		Subject:       fmt.Sprintf("Booking #%d cancelled", booking.BookingNumber),
		GuestName:     booking.Guest.Name,
		BookingNumber: booking.BookingNumber,
		RoomNumber:    roomNumber,
		CheckIn:       booking.CheckIn.Format(domain.DateFormat),
		CheckOut:      booking.CheckOut.Format(domain.DateFormat),
		TotalPrice:    booking.TotalPrice,
		Fee:           quote.Fee,
	}
	if err := s.mailer.SendWithGracefulDegradation(ctx, emailReq); err != nil {
		s.logger.Error("Cancel: failed to send cancellation email for #%d: %v", booking.BookingNumber, err)
	}
}
