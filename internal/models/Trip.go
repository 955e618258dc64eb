package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip is a scheduled outing an operator offers at a dive site.
type Trip struct {
	gorm.Model

	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	Capacity    int       `json:"capacity"`

	SiteID     uint `json:"site_id"`
	OperatorID uint `json:"operator_id"`
}
