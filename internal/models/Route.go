package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Route is a persisted authored dive path for a site. RouteData holds the
// multi-feature geometry document produced by the route editor; DrawingType
// is derived server-side from that document, never sent by clients.
type Route struct {
	gorm.Model

	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	// "walk", "swim" or "scuba"
	RouteType string `json:"route_type"`

	// "point", "line", "polygon" or "mixed"; derived from RouteData
	DrawingType string `json:"drawing_type"`

	RouteData datatypes.JSON `json:"route_data"`

	SiteID uint `json:"site_id"`
	UserID uint `json:"user_id"`
}
