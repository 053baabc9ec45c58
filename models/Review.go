package models

import "gorm.io/gorm"

// Review is a site-wide testimonial, not scoped to a room.
type Review struct {
	gorm.Model
	Rating        int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Body          string `json:"body" gorm:"type:text"`
	CustomerName  string `json:"customerName" gorm:"size:100"`
	CustomerEmail string `json:"customerEmail" gorm:"size:256"`
	CustomerPhoto string `json:"customerPhoto" gorm:"size:512"`
}
