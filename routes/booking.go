package routes

import (
	"errors"
	"strings"

	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/models"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/storage"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type BookingCustomerInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=32"`
	BookingDate string `json:"bookingDate" validate:"required,datetime=2006-01-02"`
}

type BookingRoomInput struct {
	RoomID        uint    `json:"roomId" validate:"required"`
	Title         string  `json:"title" validate:"required,max=256"`
	Price         float64 `json:"price" validate:"gte=0"`
	Currency      string  `json:"currency" validate:"max=8"`
	AvailableFrom string  `json:"availableFrom"`
	OwnerEmail    string  `json:"ownerEmail" validate:"required,email"`
}

type CreateBookingInput struct {
	CustomerInfo BookingCustomerInput `json:"customerInfo" validate:"required"`
	RoomInfo     BookingRoomInput     `json:"roomInfo" validate:"required"`
}

// CreateBooking inserts the denormalized booking document. The unique index
// on (room_id, customer_email) is the duplicate guard, so two concurrent
// requests for the same pair cannot both get through.
func CreateBooking(ctx iris.Context) {
	var input CreateBookingInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	booking := models.Booking{
		Ref:           uuid.NewString(),
		CustomerName:  input.CustomerInfo.Name,
		CustomerEmail: strings.ToLower(input.CustomerInfo.Email),
		CustomerPhone: input.CustomerInfo.Phone,
		BookingDate:   input.CustomerInfo.BookingDate,
		RoomID:        input.RoomInfo.RoomID,
		RoomTitle:     input.RoomInfo.Title,
		Price:         input.RoomInfo.Price,
		Currency:      input.RoomInfo.Currency,
		AvailableFrom: input.RoomInfo.AvailableFrom,
		OwnerEmail:    strings.ToLower(input.RoomInfo.OwnerEmail),
	}

	result := storage.DB.Create(&booking)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			utils.CreateError(iris.StatusConflict, "Conflict", "Already booked the room", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&booking)
}

func GetBookingsByCustomer(ctx iris.Context) {
	email := strings.ToLower(ctx.Params().Get("email"))

	var bookings []models.Booking
	result := storage.DB.Where("customer_email = ?", email).Order("id DESC").Find(&bookings)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// GetDashboardBookings lists every booking, newest first, for the admin
// dashboard. Reachable only behind the admin-role middleware.
func GetDashboardBookings(ctx iris.Context) {
	var bookings []models.Booking
	result := storage.DB.Order("created_at DESC").Find(&bookings)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// ApproveBooking flips approved to true. Re-approving is a no-op; an
// unknown id is a 404.
func ApproveBooking(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var booking models.Booking
	bookingExists := storage.DB.Find(&booking, id)
	if bookingExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if bookingExists.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Booking not found", ctx)
		return
	}

	if !booking.Approved {
		updated := storage.DB.Model(&booking).Update("approved", true)
		if updated.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(iris.Map{
		"message": "Booking approved successfully",
		"booking": &booking,
	})
}
