package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoomStatusAvailable   = "Available"
	RoomStatusUnavailable = "Unavailable"
)

type Room struct {
	gorm.Model
	Title         string         `json:"title"`
	PropertyType  string         `json:"propertyType"` // Single, Double, Suite, Family
	Status        string         `json:"status" gorm:"type:varchar(20);default:'Available';index"`
	AvailableFrom string         `json:"availableFrom" gorm:"type:varchar(10)"` // YYYY-MM-DD
	Price         float64        `json:"price" gorm:"check:price >= 0;index"`
	Currency      string         `json:"currency" gorm:"type:varchar(8)"`
	Image         string         `json:"image" gorm:"size:512"`
	Amenities     datatypes.JSON `json:"amenities"` // array of strings

	// Feature columns (nested "features" object on the wire)
	Bedrooms     int            `json:"-"`
	Bathrooms    int            `json:"-"`
	Kitchens     int            `json:"-"`
	LivingRooms  int            `json:"-"`
	SquareFeet   int            `json:"-"`
	Parking      bool           `json:"-"`
	FeatureFlags datatypes.JSON `json:"-"` // map of booleans (wifi, ac, ...)

	// Owner columns (nested "ownerInfo" object on the wire)
	OwnerName  string `json:"-" gorm:"size:100"`
	OwnerEmail string `json:"-" gorm:"size:256;index"`
	OwnerPhoto string `json:"-" gorm:"size:512"`
}

type RoomFeatures struct {
	Bedrooms    int             `json:"bedrooms"`
	Bathrooms   int             `json:"bathrooms"`
	Kitchens    int             `json:"kitchens"`
	LivingRooms int             `json:"livingRooms"`
	SquareFeet  int             `json:"squareFeet"`
	Parking     bool            `json:"parking"`
	Flags       map[string]bool `json:"flags"`
}

type RoomOwnerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

// Custom JSON marshaling to nest feature and owner columns the way the
// client expects, and to keep amenities a real array instead of raw JSON.
func (r *Room) MarshalJSON() ([]byte, error) {
	type Alias Room
	aux := &struct {
		Amenities []string      `json:"amenities"`
		Features  RoomFeatures  `json:"features"`
		OwnerInfo RoomOwnerInfo `json:"ownerInfo"`
		*Alias
	}{
		Amenities: []string{},
		Alias:     (*Alias)(r),
	}

	if len(r.Amenities) > 0 {
		var amenities []string
		if err := json.Unmarshal(r.Amenities, &amenities); err == nil {
			aux.Amenities = amenities
		}
	}

	flags := map[string]bool{}
	if len(r.FeatureFlags) > 0 {
		json.Unmarshal(r.FeatureFlags, &flags)
	}

	aux.Features = RoomFeatures{
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Kitchens:    r.Kitchens,
		LivingRooms: r.LivingRooms,
		SquareFeet:  r.SquareFeet,
		Parking:     r.Parking,
		Flags:       flags,
	}
	aux.OwnerInfo = RoomOwnerInfo{
		Name:  r.OwnerName,
		Email: r.OwnerEmail,
		Photo: r.OwnerPhoto,
	}

	return json.Marshal(aux)
}
