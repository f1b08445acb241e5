package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/room"
	"github.com/m04kA/Hotel-BookingService/internal/integrations/mailer"
	"github.com/m04kA/Hotel-BookingService/pkg/ptr"
)

// Фейки

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	maxNumber int64
	nextID    int64

	// createErrs выдаются по одному на каждый вызов Create; после
	// ErrDuplicateBookingNumber maxNumber увеличивается, как если бы
	// конкурирующая транзакция успела закоммититься
	createErrs []error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			f.maxNumber++
			return nil, err
		}
	}

	f.nextID++
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.bookings = append(f.bookings, &created)
	if created.BookingNumber > f.maxNumber {
		f.maxNumber = created.BookingNumber
	}
	return &created, nil
}

func (f *fakeBookingRepo) MaxBookingNumber(context.Context) (int64, error) {
	return f.maxNumber, nil
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, roomID int64, checkIn, checkOut time.Time, excludeID *int64) ([]*domain.Booking, error) {
	var inRoom []*domain.Booking
	for _, b := range f.bookings {
		if b.RoomID == roomID {
			inRoom = append(inRoom, b)
		}
	}
	return domain.FindConflicts(inRoom, checkIn, checkOut, excludeID), nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	created []events.BookingCreatedEvent
}

func (f *fakePublisher) PublishBookingCreated(_ context.Context, e events.BookingCreatedEvent) error {
	f.created = append(f.created, e)
	return nil
}

type fakeMailer struct {
	sent []mailer.EmailRequest
}

func (f *fakeMailer) SendWithGracefulDegradation(_ context.Context, e mailer.EmailRequest) error {
	f.sent = append(f.sent, e)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(br *fakeBookingRepo, rr *fakeRoomRepo) (*UseCase, *fakePublisher, *fakeMailer) {
	pub := &fakePublisher{}
	ml := &fakeMailer{}
	uc := NewUseCase(br, rr, fakeTxManager{}, pub, ml, 18, 1001, nopLogger{})
	return uc, pub, ml
}

func standardRoom() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[int64]*domain.Room{
		1: {ID: 1, RoomNumber: "101", BasePrice: 350},
	}}
}

func validRequest() *Request {
	return &Request{
		RoomID:   1,
		Guest:    domain.Guest{Name: "Иван Петров", Email: "ivan@example.com"},
		CheckIn:  date(2025, 10, 15),
		CheckOut: date(2025, 10, 17),
	}
}

// Тесты

func TestExecute_FirstBookingGetsStartNumber(t *testing.T) {
	br := &fakeBookingRepo{}
	uc, pub, ml := newTestUseCase(br, standardRoom())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1001), resp.BookingNumber)
	assert.Equal(t, 2, resp.Nights)
	assert.Equal(t, string(domain.StayConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)

	// Цена от тарифа комнаты: 350 без НДС, 18%
	assert.Equal(t, 350.00, resp.BasePrice)
	assert.Equal(t, 413.00, resp.PricePerNight)
	assert.Equal(t, 826.00, resp.TotalPrice)

	// Уведомления отправлены
	require.Len(t, pub.created, 1)
	assert.Equal(t, int64(1001), pub.created[0].BookingNumber)
	require.Len(t, ml.sent, 1)
	assert.Equal(t, "ivan@example.com", ml.sent[0].To)
}

func TestExecute_NumberFollowsCurrentMax(t *testing.T) {
	br := &fakeBookingRepo{maxNumber: 1050}
	uc, _, _ := newTestUseCase(br, standardRoom())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1051), resp.BookingNumber)
}

func TestExecute_ClientSuppliedTotalPrice(t *testing.T) {
	br := &fakeBookingRepo{}
	uc, _, _ := newTestUseCase(br, standardRoom())

	req := validRequest()
	req.PriceAnchor = ptr.Ptr(domain.AnchorTotalPrice)
	req.PriceValue = ptr.Ptr(826.00)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 826.00, resp.TotalPrice)
	assert.Equal(t, 413.00, resp.PricePerNight)
	assert.Equal(t, 350.00, resp.BasePrice)
}

func TestExecute_TouristPaysNoVAT(t *testing.T) {
	br := &fakeBookingRepo{}
	uc, _, _ := newTestUseCase(br, standardRoom())

	req := validRequest()
	req.IsTourist = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 350.00, resp.BasePrice)
	assert.Equal(t, 350.00, resp.PricePerNight)
	assert.Equal(t, 700.00, resp.TotalPrice)
}

func TestExecute_RoomUnavailable(t *testing.T) {
	br := &fakeBookingRepo{}
	uc, pub, _ := newTestUseCase(br, standardRoom())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Второй запрос на пересекающиеся даты
	req := validRequest()
	req.CheckIn = date(2025, 10, 16)
	req.CheckOut = date(2025, 10, 18)

	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrRoomUnavailable)

	var unavailable *RoomUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []int64{1001}, unavailable.Conflicts)

	// Событие опубликовано только для успешной брони
	assert.Len(t, pub.created, 1)
}

func TestExecute_BackToBackBookingsAllowed(t *testing.T) {
	br := &fakeBookingRepo{}
	uc, _, _ := newTestUseCase(br, standardRoom())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Заезд в день выезда предыдущего гостя
	req := validRequest()
	req.CheckIn = date(2025, 10, 17)
	req.CheckOut = date(2025, 10, 19)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1002), resp.BookingNumber)
}

func TestExecute_RetriesOnNumberCollision(t *testing.T) {
	// Первая попытка проигрывает гонку за номер; транзакция повторяется
	// с перечитанным максимумом
	br := &fakeBookingRepo{
		maxNumber:  1050,
		createErrs: []error{bookingRepo.ErrDuplicateBookingNumber},
	}
	uc, _, _ := newTestUseCase(br, standardRoom())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// После проигранной гонки max стал 1051, новая попытка берет 1052
	assert.Equal(t, int64(1052), resp.BookingNumber)
}

func TestExecute_SequenceRetriesExhausted(t *testing.T) {
	br := &fakeBookingRepo{
		createErrs: []error{
			bookingRepo.ErrDuplicateBookingNumber,
			bookingRepo.ErrDuplicateBookingNumber,
			bookingRepo.ErrDuplicateBookingNumber,
		},
	}
	uc, pub, _ := newTestUseCase(br, standardRoom())

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSequenceAssignment)
	assert.Empty(t, pub.created)
}

func TestExecute_RoomNotFound(t *testing.T) {
	br := &fakeBookingRepo{}
	uc, _, _ := newTestUseCase(br, standardRoom())

	req := validRequest()
	req.RoomID = 42

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	br := &fakeBookingRepo{}
	uc, _, _ := newTestUseCase(br, standardRoom())

	req := validRequest()
	req.CheckIn = date(2025, 10, 17)
	req.CheckOut = date(2025, 10, 15)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecute_ValidationErrors(t *testing.T) {
	br := &fakeBookingRepo{}
	uc, _, _ := newTestUseCase(br, standardRoom())

	t.Run("missing guest name", func(t *testing.T) {
		req := validRequest()
		req.Guest.Name = ""
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no contact info", func(t *testing.T) {
		req := validRequest()
		req.Guest.Phone = ""
		req.Guest.Email = ""
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("anchor without value", func(t *testing.T) {
		req := validRequest()
		req.PriceAnchor = ptr.Ptr(domain.AnchorBasePrice)
		req.PriceValue = nil
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidPriceInput)
	})
}

// contendedBookingRepo потокобезопасный фейк с уникальным ограничением
// на номер брони — как уникальный индекс в БД
type contendedBookingRepo struct {
	mu       sync.Mutex
	numbers  map[int64]struct{}
	bookings []*domain.Booking
	nextID   int64
	max      int64
}

func (f *contendedBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, taken := f.numbers[b.BookingNumber]; taken {
		return nil, bookingRepo.ErrDuplicateBookingNumber
	}
	f.numbers[b.BookingNumber] = struct{}{}
	if b.BookingNumber > f.max {
		f.max = b.BookingNumber
	}

	f.nextID++
	created := *b
	created.ID = f.nextID
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *contendedBookingRepo) MaxBookingNumber(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.max, nil
}

func (f *contendedBookingRepo) FindOverlapping(_ context.Context, roomID int64, checkIn, checkOut time.Time, excludeID *int64) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var inRoom []*domain.Booking
	for _, b := range f.bookings {
		if b.RoomID == roomID {
			inRoom = append(inRoom, b)
		}
	}
	return domain.FindConflicts(inRoom, checkIn, checkOut, excludeID), nil
}

// serializingTxManager моделирует serializable изоляцию мьютексом:
// чтение максимума и вставка одной транзакции атомарны относительно других
type serializingTxManager struct {
	mu sync.Mutex
}

func (m *serializingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type safePublisher struct {
	mu      sync.Mutex
	created []events.BookingCreatedEvent
}

func (f *safePublisher) PublishBookingCreated(_ context.Context, e events.BookingCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, e)
	return nil
}

type safeMailer struct {
	mu   sync.Mutex
	sent []mailer.EmailRequest
}

func (f *safeMailer) SendWithGracefulDegradation(_ context.Context, e mailer.EmailRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
	return nil
}

func TestExecute_ConcurrentCreationsGetDistinctNumbers(t *testing.T) {
	const workers = 16

	br := &contendedBookingRepo{numbers: map[int64]struct{}{}}
	pub := &safePublisher{}
	ml := &safeMailer{}
	uc := NewUseCase(br, standardRoom(), &serializingTxManager{}, pub, ml, 18, 1001, nopLogger{})

	var wg sync.WaitGroup
	results := make([]int64, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			// Непересекающиеся даты: гонка идет только за номер брони
			req := validRequest()
			req.CheckIn = date(2026, 1, 1).AddDate(0, 0, i*3)
			req.CheckOut = req.CheckIn.AddDate(0, 0, 2)

			resp, err := uc.Execute(context.Background(), req)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = resp.BookingNumber
		}(i)
	}
	wg.Wait()

	// Все создания успешны, все номера различны и непрерывны от стартового
	seen := make(map[int64]struct{}, workers)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		_, dup := seen[results[i]]
		assert.False(t, dup, "номер %d выдан дважды", results[i])
		seen[results[i]] = struct{}{}
	}
	require.Len(t, seen, workers)
	assert.Contains(t, seen, int64(1001))
	assert.Contains(t, seen, int64(1001+workers-1))
	assert.Len(t, pub.created, workers)
}

func TestExecute_SpecialPricesAffectDerivedRate(t *testing.T) {
	rr := &fakeRoomRepo{rooms: map[int64]*domain.Room{
		1: {
			ID: 1, RoomNumber: "101", BasePrice: 100,
			SpecialPrices: map[string]float64{"friday": 150},
		},
	}}
	br := &fakeBookingRepo{}
	uc, _, _ := newTestUseCase(br, rr)

	// Чт 16.10 (100) + Пт 17.10 (150): средняя ставка 125
	req := validRequest()
	req.CheckIn = date(2025, 10, 16)
	req.CheckOut = date(2025, 10, 18)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 125.00, resp.BasePrice)
	assert.Equal(t, 147.50, resp.PricePerNight) // 125 * 1.18
	assert.Equal(t, 295.00, resp.TotalPrice)
}
