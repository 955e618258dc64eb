package models

import "gorm.io/gorm"

// DiveSite is a directory entry for a diving location. Lat/Lng is the
// reference coordinate routes for this site are drawn around, and the
// target of snapping in the route editor.
type DiveSite struct {
	gorm.Model

	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat" binding:"required"`
	Lng         float64 `json:"lng" binding:"required"`
	MaxDepth    float64 `json:"max_depth"`
	Difficulty  string  `json:"difficulty"` // "beginner", "intermediate", "advanced"

	// Associations
	Routes []Route `gorm:"foreignKey:SiteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"routes,omitempty"`
	Trips  []Trip  `gorm:"foreignKey:SiteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"trips,omitempty"`
}
