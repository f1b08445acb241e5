package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/room"
	"github.com/m04kA/Hotel-BookingService/internal/integrations/mailer"
	"github.com/m04kA/Hotel-BookingService/internal/service/bookings/models"
)

// Фейки

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	lastPrices *domain.PriceSet
	cancelled  map[int64]cancelRecord
}

type cancelRecord struct {
	reason      string
	fee         float64
	cancelledAt time.Time
}

func newFakeBookingRepo(bs ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:  map[int64]*domain.Booking{},
		cancelled: map[int64]cancelRecord{},
	}
	for _, b := range bs {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if filter.RoomID != nil && b.RoomID != *filter.RoomID {
			continue
		}
		// Явный фильтр по статусу заменяет фильтр "только активные",
		// как в SQL-репозитории
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdatePrices(_ context.Context, id int64, prices domain.PriceSet) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.BasePrice = prices.BasePrice
	b.PricePerNight = prices.PricePerNight
	b.TotalPrice = prices.TotalPrice
	f.lastPrices = &prices
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string, fee float64, cancelledAt time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if !b.CanBeCancelled() {
		return bookingRepo.ErrCannotCancel
	}
	b.Status = domain.StayCancelled
	b.CancellationReason = &reason
	b.CancellationFee = &fee
	b.CancelledAt = &cancelledAt
	f.cancelled[id] = cancelRecord{reason: reason, fee: fee, cancelledAt: cancelledAt}
	return nil
}

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return room, nil
}

type fakePublisher struct {
	cancelled []events.BookingCancelledEvent
}

func (f *fakePublisher) PublishBookingCancelled(_ context.Context, e events.BookingCancelledEvent) error {
	f.cancelled = append(f.cancelled, e)
	return nil
}

type fakeMailer struct {
	sent []mailer.EmailRequest
}

func (f *fakeMailer) SendWithGracefulDegradation(_ context.Context, e mailer.EmailRequest) error {
	f.sent = append(f.sent, e)
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            1,
		BookingNumber: 1001,
		RoomID:        1,
		Guest:         domain.Guest{Name: "Иван Петров", Email: "ivan@example.com"},
		CheckIn:       date(2025, 10, 18),
		CheckOut:      date(2025, 10, 20),
		Nights:        2,
		BasePrice:     350,
		PricePerNight: 413,
		TotalPrice:    826,
		Status:        domain.StayConfirmed,
		PaymentStatus: domain.PaymentPending,
	}
}

func newTestService(br *fakeBookingRepo, now time.Time) (*Service, *fakePublisher, *fakeMailer) {
	pub := &fakePublisher{}
	ml := &fakeMailer{}
	rr := &fakeRoomRepo{rooms: map[int64]*domain.Room{1: {ID: 1, RoomNumber: "101"}}}
	svc := NewService(br, rr, pub, ml, 3, 18, nopLogger{}).WithTimeProvider(fixedTime{now: now})
	return svc, pub, ml
}

// Тесты

func TestCancel_FreeBeforeThreshold(t *testing.T) {
	br := newFakeBookingRepo(testBooking())
	// Ровно 3 дня до заезда — порог включительный
	svc, pub, ml := newTestService(br, date(2025, 10, 15))

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Reason: "планы изменились"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.CancellationFee)
	assert.True(t, resp.IsFullRefund)
	assert.Equal(t, 3, resp.DaysUntilCheckIn)
	assert.Equal(t, "cancelled", resp.Status)

	// Штраф и причина зафиксированы в хранилище
	rec := br.cancelled[1]
	assert.Equal(t, 0.0, rec.fee)
	assert.Equal(t, "планы изменились", rec.reason)

	require.Len(t, pub.cancelled, 1)
	assert.True(t, pub.cancelled[0].IsFullRefund)
	require.Len(t, ml.sent, 1)
	assert.Equal(t, "ivan@example.com", ml.sent[0].To)
	assert.Equal(t, "101", ml.sent[0].RoomNumber)
}

func TestCancel_LateCancellationChargesFullPrice(t *testing.T) {
	br := newFakeBookingRepo(testBooking())
	// Меньше трёх полных суток до заезда
	svc, pub, _ := newTestService(br, date(2025, 10, 16))

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
	require.NoError(t, err)

	assert.Equal(t, 826.00, resp.CancellationFee)
	assert.False(t, resp.IsFullRefund)
	assert.Equal(t, 2, resp.DaysUntilCheckIn)

	assert.Equal(t, 826.00, br.cancelled[1].fee)
	require.Len(t, pub.cancelled, 1)
	assert.Equal(t, 826.00, pub.cancelled[0].CancellationFee)
}

func TestCancel_SecondCancelReturnsAlreadyCancelled(t *testing.T) {
	br := newFakeBookingRepo(testBooking())
	svc, pub, _ := newTestService(br, date(2025, 10, 10))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
	require.NoError(t, err)

	// Повторная отмена не меняет состояние
	firstRecord := br.cancelled[1]
	_, err = svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Reason: "другая причина"})
	require.ErrorIs(t, err, ErrAlreadyCancelled)

	assert.Equal(t, firstRecord, br.cancelled[1])
	assert.Len(t, pub.cancelled, 1)
}

func TestCancel_StayUnderway(t *testing.T) {
	br := newFakeBookingRepo(testBooking())
	// Гость уже заехал
	svc, _, _ := newTestService(br, date(2025, 10, 19))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestCancel_CompletedStayNotCancellable(t *testing.T) {
	b := testBooking()
	b.Status = domain.StayCompleted
	br := newFakeBookingRepo(b)
	svc, _, _ := newTestService(br, date(2025, 10, 10))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestCancel_NotFound(t *testing.T) {
	br := newFakeBookingRepo()
	svc, _, _ := newTestService(br, date(2025, 10, 10))

	_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdatePrice_RederivesAllFields(t *testing.T) {
	br := newFakeBookingRepo(testBooking())
	svc, _, _ := newTestService(br, date(2025, 10, 10))

	resp, err := svc.UpdatePrice(context.Background(), 1, &models.UpdatePriceRequest{
		Anchor: "totalPrice",
		Value:  1000,
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.00, resp.TotalPrice)
	assert.Equal(t, 500.00, resp.PricePerNight)
	assert.Equal(t, 423.73, resp.BasePrice) // 500 / 1.18
	assert.Equal(t, resp.BasePrice, resp.PriceWithoutVat)

	require.NotNil(t, br.lastPrices)
	assert.Equal(t, 1000.00, br.lastPrices.TotalPrice)
}

func TestUpdatePrice_InvalidAnchor(t *testing.T) {
	br := newFakeBookingRepo(testBooking())
	svc, _, _ := newTestService(br, date(2025, 10, 10))

	_, err := svc.UpdatePrice(context.Background(), 1, &models.UpdatePriceRequest{
		Anchor: "weekly",
		Value:  1000,
	})
	assert.ErrorIs(t, err, ErrInvalidPriceInput)
}

func TestUpdatePrice_NegativeValue(t *testing.T) {
	br := newFakeBookingRepo(testBooking())
	svc, _, _ := newTestService(br, date(2025, 10, 10))

	_, err := svc.UpdatePrice(context.Background(), 1, &models.UpdatePriceRequest{
		Anchor: "basePrice",
		Value:  -10,
	})
	assert.ErrorIs(t, err, ErrInvalidPriceInput)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	br := newFakeBookingRepo(testBooking())
	svc, _, _ := newTestService(br, date(2025, 10, 10))

	status := "no-show"
	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_AcceptsLegacyCancelledSpelling(t *testing.T) {
	cancelled := testBooking()
	cancelled.Status = domain.StayCancelled
	active := testBooking()
	active.ID = 2
	active.BookingNumber = 1002
	br := newFakeBookingRepo(cancelled, active)
	svc, _, _ := newTestService(br, date(2025, 10, 10))

	// Старое написание в одну "l" принимается как фильтр
	status := "canceled"
	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: &status})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1001), resp.Bookings[0].BookingNumber)
	// В ответе всегда каноническое написание
	assert.Equal(t, "cancelled", resp.Bookings[0].Status)
}

func TestList_FiltersByRoom(t *testing.T) {
	other := testBooking()
	other.ID = 2
	other.BookingNumber = 1002
	other.RoomID = 7
	br := newFakeBookingRepo(testBooking(), other)
	svc, _, _ := newTestService(br, date(2025, 10, 10))

	roomID := int64(7)
	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{RoomID: &roomID})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1002), resp.Bookings[0].BookingNumber)
}

func TestGetByID_MapsLegacyAlias(t *testing.T) {
	br := newFakeBookingRepo(testBooking())
	svc, _, _ := newTestService(br, date(2025, 10, 10))

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, resp.BasePrice, resp.PriceWithoutVat)
	assert.Equal(t, "2025-10-18", resp.CheckIn)
	assert.Equal(t, "2025-10-20", resp.CheckOut)
}
