package models

import (
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
)

// Request модели

// CreateRoomRequest запрос на создание комнаты
type CreateRoomRequest struct {
	RoomNumber    string             `json:"roomNumber"`
	Type          string             `json:"type"`
	BasePrice     float64            `json:"basePrice"`
	MaxOccupancy  int                `json:"maxOccupancy"`
	SpecialPrices map[string]float64 `json:"specialPrices,omitempty"`
}

// ToDomainRoom конвертирует запрос в domain модель
func (r *CreateRoomRequest) ToDomainRoom() *domain.Room {
	return &domain.Room{
		RoomNumber:    r.RoomNumber,
		Type:          r.Type,
		BasePrice:     r.BasePrice,
		MaxOccupancy:  r.MaxOccupancy,
		SpecialPrices: r.SpecialPrices,
	}
}

// UpdatePricingRequest запрос на обновление тарифов комнаты.
// Ключи SpecialPrices — конкретная дата "2025-12-31" либо день недели
// в нижнем регистре ("friday"); дата имеет приоритет.
type UpdatePricingRequest struct {
	BasePrice     float64            `json:"basePrice"`
	SpecialPrices map[string]float64 `json:"specialPrices,omitempty"`
}

// Response модели

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID            int64              `json:"id"`
	RoomNumber    string             `json:"roomNumber"`
	Type          string             `json:"type"`
	BasePrice     float64            `json:"basePrice"`
	MaxOccupancy  int                `json:"maxOccupancy"`
	SpecialPrices map[string]float64 `json:"specialPrices,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// Методы конвертации

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}

	return &RoomResponse{
		ID:            r.ID,
		RoomNumber:    r.RoomNumber,
		Type:          r.Type,
		BasePrice:     r.BasePrice,
		MaxOccupancy:  r.MaxOccupancy,
		SpecialPrices: r.SpecialPrices,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainRoomList конвертирует список domain моделей в DTO
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	if rooms == nil {
		return &RoomListResponse{
			Rooms: []RoomResponse{},
		}
	}

	resp := &RoomListResponse{
		Rooms: make([]RoomResponse, len(rooms)),
	}

	for i, room := range rooms {
		if roomResp := FromDomainRoom(room); roomResp != nil {
			resp.Rooms[i] = *roomResp
		}
	}

	return resp
}
