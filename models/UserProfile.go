package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserProfile holds the demographic details a visitor fills in on the
// profile page. One row per email, replaced field-by-field on upsert.
type UserProfile struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"userEmail" gorm:"column:user_email;size:256;uniqueIndex;not null"`
	Gender    string         `json:"gender" gorm:"size:20"`
	Age       int            `json:"age"`
	Birthday  string         `json:"birthday" gorm:"size:20"`
	Address   datatypes.JSON `json:"address"` // street/city/country object
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (up *UserProfile) MarshalJSON() ([]byte, error) {
	type Alias UserProfile
	aux := &struct {
		Address map[string]string `json:"address"`
		*Alias
	}{
		Address: map[string]string{},
		Alias:   (*Alias)(up),
	}

	if len(up.Address) > 0 {
		var address map[string]string
		if err := json.Unmarshal(up.Address, &address); err == nil {
			aux.Address = address
		}
	}

	return json.Marshal(aux)
}
