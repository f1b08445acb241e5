package rooms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	roomRepo "github.com/m04kA/Hotel-BookingService/internal/infra/storage/room"
	"github.com/m04kA/Hotel-BookingService/internal/service/rooms/models"
)

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

func (f *fakeRoomRepo) List(context.Context) ([]*domain.Room, error) {
	out := make([]*domain.Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRoomRepo) UpdatePricing(_ context.Context, id int64, basePrice float64, specialPrices map[string]float64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	room.BasePrice = basePrice
	room.SpecialPrices = specialPrices
	room.UpdatedAt = time.Now()
	return room, nil
}

func (f *fakeRoomRepo) Create(_ context.Context, room *domain.Room) (*domain.Room, error) {
	for _, existing := range f.rooms {
		if existing.RoomNumber == room.RoomNumber {
			return nil, roomRepo.ErrDuplicateRoomNumber
		}
	}
	room.ID = int64(len(f.rooms) + 1)
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	f.rooms[room.ID] = room
	return room, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeRoomRepo) {
	repo := &fakeRoomRepo{rooms: map[int64]*domain.Room{
		1: {ID: 1, RoomNumber: "101", Type: "standard", BasePrice: 100},
	}}
	return NewService(repo, nopLogger{}), repo
}

func TestCreate_Success(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateRoomRequest{
		RoomNumber:    "202",
		Type:          "deluxe",
		BasePrice:     500,
		MaxOccupancy:  3,
		SpecialPrices: map[string]float64{"saturday": 650},
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "202", resp.RoomNumber)
	assert.Equal(t, 500.0, resp.BasePrice)
	assert.Equal(t, 650.0, resp.SpecialPrices["saturday"])
	assert.Len(t, repo.rooms, 2)
}

func TestCreate_DuplicateRoomNumber(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateRoomRequest{
		RoomNumber:   "101",
		Type:         "standard",
		BasePrice:    100,
		MaxOccupancy: 2,
	})
	assert.ErrorIs(t, err, ErrRoomAlreadyExists)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		req  models.CreateRoomRequest
	}{
		{"empty room number", models.CreateRoomRequest{Type: "standard", BasePrice: 100, MaxOccupancy: 2}},
		{"negative base price", models.CreateRoomRequest{RoomNumber: "202", Type: "standard", BasePrice: -1, MaxOccupancy: 2}},
		{"zero occupancy", models.CreateRoomRequest{RoomNumber: "202", Type: "standard", BasePrice: 100}},
		{"bad special price key", models.CreateRoomRequest{
			RoomNumber: "202", Type: "standard", BasePrice: 100, MaxOccupancy: 2,
			SpecialPrices: map[string]float64{"holiday": 150},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdatePricing_Success(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.UpdatePricing(context.Background(), 1, &models.UpdatePricingRequest{
		BasePrice: 120,
		SpecialPrices: map[string]float64{
			"friday":     150,
			"2025-12-31": 400,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 120.0, resp.BasePrice)
	assert.Equal(t, 400.0, resp.SpecialPrices["2025-12-31"])
	assert.Equal(t, 150.0, repo.rooms[1].SpecialPrices["friday"])
}

func TestUpdatePricing_RejectsBadKeys(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		key  string
	}{
		{"capitalized weekday", "Friday"},
		{"not a date", "31-12-2025"},
		{"random string", "holiday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdatePricing(context.Background(), 1, &models.UpdatePricingRequest{
				BasePrice:     100,
				SpecialPrices: map[string]float64{tt.key: 150},
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdatePricing_RejectsNegativePrices(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdatePricing(context.Background(), 1, &models.UpdatePricingRequest{BasePrice: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdatePricing(context.Background(), 1, &models.UpdatePricingRequest{
		BasePrice:     100,
		SpecialPrices: map[string]float64{"friday": -5},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePricing_RoomNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdatePricing(context.Background(), 42, &models.UpdatePricingRequest{BasePrice: 100})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestGetByID(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "101", resp.RoomNumber)

	_, err = svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestList(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Rooms, 1)
}
