package models

import "gorm.io/gorm"

// DiveOperator is a dive shop or charter listed in the operator directory.
type DiveOperator struct {
	gorm.Model

	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Phone       string `json:"phone"`
	UserID      uint   `json:"user_id"`

	Trips []Trip `gorm:"foreignKey:OperatorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"trips,omitempty"`
}
