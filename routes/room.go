package routes

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/models"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/storage"
	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPageSize   = 4
	featuredRoomLimit = 5
)

var allowedSortKeys = []string{"priceHighToLow", "priceLowToHigh"}

// roomUpdateColumns is every column PUT replaces. Selecting them explicitly
// makes the update write zero values too (price 0, parking false, cleared
// image), which a plain struct Updates would skip. Owner columns stay put.
var roomUpdateColumns = []string{
	"title", "property_type", "status", "available_from", "price",
	"currency", "image", "amenities", "bedrooms", "bathrooms",
	"kitchens", "living_rooms", "square_feet", "parking", "feature_flags",
}

// RoomQuery mirrors the /rooms and /roomCount query string.
type RoomQuery struct {
	SearchText string
	MinPrice   float64
	MaxPrice   float64
	PriceRange bool // both bounds present
	SortBy     string
	Page       int // 0-based after Normalize
	Size       int
	Featured   bool
}

func parseRoomQuery(ctx iris.Context) RoomQuery {
	q := RoomQuery{
		SearchText: strings.TrimSpace(ctx.URLParam("searchText")),
		SortBy:     ctx.URLParam("sortBy"),
		Page:       ctx.URLParamIntDefault("page", 0),
		Size:       ctx.URLParamIntDefault("size", 0),
		Featured:   ctx.URLParam("featuredRooms") == "featured",
	}

	// The range applies only when both bounds arrive together.
	if ctx.URLParam("minPrice") != "" && ctx.URLParam("maxPrice") != "" {
		q.MinPrice = ctx.URLParamFloat64Default("minPrice", 0)
		q.MaxPrice = ctx.URLParamFloat64Default("maxPrice", 0)
		q.PriceRange = true
	}

	q.Normalize()
	return q
}

// Normalize applies the client's defaults: 1-based page numbers (anything
// below 1 means the first page), page size 4, and a sort-key whitelist.
func (q *RoomQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 0
	} else {
		q.Page = q.Page - 1
	}
	if q.Size <= 0 {
		q.Size = defaultPageSize
	}
	if !slices.Contains(allowedSortKeys, q.SortBy) {
		q.SortBy = ""
	}
}

// Filter applies the search/price predicate shared by /rooms and /roomCount.
func (q RoomQuery) Filter(db *gorm.DB) *gorm.DB {
	if q.SearchText != "" {
		db = db.Where("title ILIKE ?", "%"+q.SearchText+"%")
	}
	if q.PriceRange {
		db = db.Where("price >= ? AND price <= ?", q.MinPrice, q.MaxPrice)
	}
	return db
}

// Order maps the sort key onto an ORDER BY clause.
func (q RoomQuery) Order(db *gorm.DB) *gorm.DB {
	switch q.SortBy {
	case "priceHighToLow":
		return db.Order("price DESC").Order("id DESC")
	case "priceLowToHigh":
		return db.Order("price ASC").Order("id DESC")
	}
	return db.Order("id DESC")
}

func GetRooms(ctx iris.Context) {
	query := parseRoomQuery(ctx)

	// Featured mode short-circuits: top rooms by price, everything else
	// in the query string ignored, served from redis when warm.
	if query.Featured {
		getFeaturedRooms(ctx)
		return
	}

	var rooms []models.Room
	result := query.Order(query.Filter(storage.DB.Model(&models.Room{}))).
		Offset(query.Page * query.Size).
		Limit(query.Size).
		Find(&rooms)

	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(rooms)
}

func getFeaturedRooms(ctx iris.Context) {
	if cached := storage.GetCachedFeaturedRooms(ctx.Request().Context()); cached != "" {
		ctx.ContentType("application/json")
		ctx.WriteString(cached)
		return
	}

	var rooms []models.Room
	result := storage.DB.Order("price DESC").Limit(featuredRoomLimit).Find(&rooms)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	payload, err := json.Marshal(rooms)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheFeaturedRooms(ctx.Request().Context(), string(payload))
	ctx.ContentType("application/json")
	ctx.Write(payload)
}

func GetRoomCount(ctx iris.Context) {
	query := parseRoomQuery(ctx)

	var count int64
	result := query.Filter(storage.DB.Model(&models.Room{})).Count(&count)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"count": count})
}

func GetRoom(ctx iris.Context) {
	id := ctx.Params().Get("id")

	room := getRoomByID(id, ctx)
	if room == nil {
		return
	}

	ctx.JSON(room)
}

func GetRoomsByOwner(ctx iris.Context) {
	email := strings.ToLower(ctx.Params().Get("email"))

	var rooms []models.Room
	result := storage.DB.Where("owner_email = ?", email).Order("id DESC").Find(&rooms)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(rooms)
}

func CreateRoom(ctx iris.Context) {
	var input CreateRoomInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	flags := input.Features.Flags
	if flags == nil {
		flags = map[string]bool{}
	}
	flagsJSON, _ := json.Marshal(flags)

	room := models.Room{
		Title:         input.Title,
		PropertyType:  input.PropertyType,
		Status:        input.Status,
		AvailableFrom: input.AvailableFrom,
		Price:         input.Price,
		Currency:      input.Currency,
		Image:         insertImage(input.Image, ""),
		Amenities:     datatypes.JSON(amenitiesJSON),
		Bedrooms:      input.Features.Bedrooms,
		Bathrooms:     input.Features.Bathrooms,
		Kitchens:      input.Features.Kitchens,
		LivingRooms:   input.Features.LivingRooms,
		SquareFeet:    input.Features.SquareFeet,
		Parking:       input.Features.Parking,
		FeatureFlags:  datatypes.JSON(flagsJSON),
		OwnerName:     input.OwnerInfo.Name,
		OwnerEmail:    strings.ToLower(input.OwnerInfo.Email),
		OwnerPhoto:    input.OwnerInfo.Photo,
	}

	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}

	result := storage.DB.Create(&room)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateFeaturedRooms(ctx.Request().Context())
	ctx.JSON(&room)
}

func UpdateRoom(ctx iris.Context) {
	id := ctx.Params().Get("id")

	room := getRoomByID(id, ctx)
	if room == nil {
		return
	}

	if !requesterOwnsRoom(ctx, room) {
		utils.CreateForbidden(ctx)
		return
	}

	var input UpdateRoomInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenitiesJSON, _ := json.Marshal(input.Amenities)
	flagsJSON, _ := json.Marshal(input.Features.Flags)

	room.Title = input.Title
	room.PropertyType = input.PropertyType
	room.Status = input.Status
	room.AvailableFrom = input.AvailableFrom
	room.Price = input.Price
	room.Currency = input.Currency
	room.Image = insertImage(input.Image, fmt.Sprintf("room_%d", room.ID))
	room.Amenities = datatypes.JSON(amenitiesJSON)
	room.Bedrooms = input.Features.Bedrooms
	room.Bathrooms = input.Features.Bathrooms
	room.Kitchens = input.Features.Kitchens
	room.LivingRooms = input.Features.LivingRooms
	room.SquareFeet = input.Features.SquareFeet
	room.Parking = input.Features.Parking
	room.FeatureFlags = datatypes.JSON(flagsJSON)

	rowsUpdated := updateRoomRecord(storage.DB, room)
	if rowsUpdated.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateFeaturedRooms(ctx.Request().Context())
	ctx.StatusCode(iris.StatusNoContent)
}

func DeleteRoom(ctx iris.Context) {
	id := ctx.Params().Get("id")

	room := getRoomByID(id, ctx)
	if room == nil {
		return
	}

	if !requesterOwnsRoom(ctx, room) {
		utils.CreateForbidden(ctx)
		return
	}

	roomDeleted := storage.DB.Delete(&models.Room{}, room.ID)
	if roomDeleted.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Hosted image removal is best effort.
	if room.Image != "" {
		storage.DeleteImage(room.Image)
	}

	storage.InvalidateFeaturedRooms(ctx.Request().Context())
	ctx.StatusCode(iris.StatusNoContent)
}

func updateRoomRecord(db *gorm.DB, room *models.Room) *gorm.DB {
	return db.Model(room).Select(roomUpdateColumns).Updates(room)
}

func getRoomByID(id string, ctx iris.Context) *models.Room {
	var room models.Room
	roomExists := storage.DB.Find(&room, id)

	if roomExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}

	if roomExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return nil
	}

	return &room
}

// requesterOwnsRoom allows the listing owner and admins through. The
// original UI only hid the buttons; the check belongs on the server.
func requesterOwnsRoom(ctx iris.Context, room *models.Room) bool {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	return claims.Email == room.OwnerEmail || claims.Role == models.RoleAdmin
}

// insertImage uploads base64 submissions to Cloudinary and passes through
// anything that is already a URL.
func insertImage(image, publicID string) string {
	if image == "" || !strings.HasPrefix(image, "data:") {
		return image
	}
	if publicID == "" {
		publicID = fmt.Sprintf("room_%d", time.Now().UnixNano()/int64(time.Millisecond))
	}
	if url := storage.UploadBase64Image(image, publicID); url != "" {
		return url
	}
	fmt.Printf("Failed to upload room image with publicID: %s\n", publicID)
	return ""
}

type RoomFeaturesInput struct {
	Bedrooms    int             `json:"bedrooms" validate:"gte=0,lte=10"`
	Bathrooms   int             `json:"bathrooms" validate:"gte=0,lte=10"`
	Kitchens    int             `json:"kitchens" validate:"gte=0,lte=5"`
	LivingRooms int             `json:"livingRooms" validate:"gte=0,lte=5"`
	SquareFeet  int             `json:"squareFeet" validate:"gte=0"`
	Parking     bool            `json:"parking"`
	Flags       map[string]bool `json:"flags"`
}

type RoomOwnerInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo" validate:"max=512"`
}

type CreateRoomInput struct {
	Title         string            `json:"title" validate:"required,max=256"`
	PropertyType  string            `json:"propertyType" validate:"required,max=64"`
	Status        string            `json:"status" validate:"omitempty,oneof=Available Unavailable"`
	AvailableFrom string            `json:"availableFrom" validate:"required,datetime=2006-01-02"`
	Price         float64           `json:"price" validate:"gte=0"`
	Currency      string            `json:"currency" validate:"required,max=8"`
	Image         string            `json:"image"`
	Amenities     []string          `json:"amenities"`
	Features      RoomFeaturesInput `json:"features"`
	OwnerInfo     RoomOwnerInput    `json:"ownerInfo" validate:"required"`
}

type UpdateRoomInput struct {
	Title         string            `json:"title" validate:"required,max=256"`
	PropertyType  string            `json:"propertyType" validate:"required,max=64"`
	Status        string            `json:"status" validate:"required,oneof=Available Unavailable"`
	AvailableFrom string            `json:"availableFrom" validate:"required,datetime=2006-01-02"`
	Price         float64           `json:"price" validate:"gte=0"`
	Currency      string            `json:"currency" validate:"required,max=8"`
	Image         string            `json:"image"`
	Amenities     []string          `json:"amenities"`
	Features      RoomFeaturesInput `json:"features"`
}
