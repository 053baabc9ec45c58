package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Booking is a customer's request to reserve a room, pending approval.
// Room fields are copied from the room at request time so the dashboard
// keeps showing what was booked even if the listing changes later.
type Booking struct {
	gorm.Model
	Ref string `json:"ref" gorm:"type:varchar(36);uniqueIndex"`

	// Customer columns (nested "customerInfo" on the wire)
	CustomerName  string `json:"-" gorm:"size:100"`
	CustomerEmail string `json:"-" gorm:"size:256;uniqueIndex:idx_booking_room_customer"`
	CustomerPhone string `json:"-" gorm:"size:32"`
	BookingDate   string `json:"-" gorm:"type:varchar(10)"`

	// Room snapshot columns (nested "roomInfo" on the wire).
	// The (RoomID, CustomerEmail) unique index is the duplicate-booking
	// guard; a violation surfaces as a 409 instead of a pre-insert check.
	RoomID        uint    `json:"-" gorm:"uniqueIndex:idx_booking_room_customer"`
	RoomTitle     string  `json:"-" gorm:"size:256"`
	Price         float64 `json:"-"`
	Currency      string  `json:"-" gorm:"type:varchar(8)"`
	AvailableFrom string  `json:"-" gorm:"type:varchar(10)"`
	OwnerEmail    string  `json:"-" gorm:"size:256;index"`

	Approved bool `json:"approved" gorm:"default:false"`
}

type BookingCustomerInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	BookingDate string `json:"bookingDate"`
}

type BookingRoomInfo struct {
	RoomID        uint    `json:"roomId"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	AvailableFrom string  `json:"availableFrom"`
	OwnerEmail    string  `json:"ownerEmail"`
}

func (b *Booking) MarshalJSON() ([]byte, error) {
	type Alias Booking
	aux := &struct {
		CustomerInfo BookingCustomerInfo `json:"customerInfo"`
		RoomInfo     BookingRoomInfo     `json:"roomInfo"`
		*Alias
	}{
		CustomerInfo: BookingCustomerInfo{
			Name:        b.CustomerName,
			Email:       b.CustomerEmail,
			Phone:       b.CustomerPhone,
			BookingDate: b.BookingDate,
		},
		RoomInfo: BookingRoomInfo{
			RoomID:        b.RoomID,
			Title:         b.RoomTitle,
			Price:         b.Price,
			Currency:      b.Currency,
			AvailableFrom: b.AvailableFrom,
			OwnerEmail:    b.OwnerEmail,
		},
		Alias: (*Alias)(b),
	}

	return json.Marshal(aux)
}
