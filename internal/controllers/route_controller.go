package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dive_trails/internal/config"
	"dive_trails/internal/editor"
	"dive_trails/internal/models"
)

// RouteResponse mirrors models.Route but exposes route_data as raw JSON so
// clients get the feature collection, not a base64 blob.
type RouteResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	RouteType   string          `json:"route_type"`
	DrawingType string          `json:"drawing_type"`
	RouteData   json.RawMessage `json:"route_data"`
	SiteID      uint            `json:"site_id"`
	UserID      uint            `json:"user_id"`
}

func toRouteResponse(route models.Route) RouteResponse {
	return RouteResponse{
		ID:          route.ID,
		Name:        route.Name,
		Description: route.Description,
		RouteType:   route.RouteType,
		DrawingType: route.DrawingType,
		RouteData:   json.RawMessage(route.RouteData),
		SiteID:      route.SiteID,
		UserID:      route.UserID,
	}
}

// parseRouteDocument validates incoming route_data as a feature collection
// with at least one usable feature.
func parseRouteDocument(raw json.RawMessage) (*geojson.FeatureCollection, error) {
	fc, err := editor.DecodeDocument(raw)
	if err != nil {
		return nil, err
	}
	segments, err := editor.FromDocument(fc)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, errors.New("route document has no usable features")
	}
	return fc, nil
}

// deriveDrawingType classifies a route document by the geometry it
// contains. The classification lives server-side; clients never send it.
func deriveDrawingType(fc *geojson.FeatureCollection) string {
	kinds := make(map[string]bool)
	for _, f := range fc.Features {
		switch f.Geometry.(type) {
		case *geom.Point:
			kinds["point"] = true
		case *geom.LineString, *geom.MultiLineString:
			kinds["line"] = true
		case *geom.Polygon, *geom.MultiPolygon:
			kinds["polygon"] = true
		}
	}
	if len(kinds) != 1 {
		return "mixed"
	}
	for k := range kinds {
		return k
	}
	return "mixed"
}

type routeInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	RouteType   string          `json:"route_type"`
	RouteData   json.RawMessage `json:"route_data" binding:"required"`
	SiteID      uint            `json:"site_id"`
}

// CreateRoute persists a route document authored in the editor.
func CreateRoute(c *gin.Context) {
	userID, ok := c.MustGet("user_id").(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}

	var input routeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	fc, err := parseRouteDocument(input.RouteData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route data: " + err.Error()})
		return
	}

	if input.SiteID != 0 {
		var site models.DiveSite
		if err := config.DB.First(&site, input.SiteID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "site does not exist"})
			return
		}
	}

	route := models.Route{
		Name:        input.Name,
		Description: input.Description,
		RouteType:   string(editor.ParseActivityType(input.RouteType)),
		DrawingType: deriveDrawingType(fc),
		RouteData:   datatypes.JSON(input.RouteData),
		SiteID:      input.SiteID,
		UserID:      userID,
	}
	if err := config.DB.Create(&route).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create route failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(route)})
}

// ListRoutes returns routes, optionally filtered by site or restricted to
// the authenticated user's own.
func ListRoutes(c *gin.Context) {
	query := config.DB.Model(&models.Route{})
	if siteID := c.Query("site_id"); siteID != "" {
		query = query.Where("site_id = ?", siteID)
	}
	if c.Query("mine") == "true" {
		if userID, ok := c.MustGet("user_id").(uint); ok {
			query = query.Where("user_id = ?", userID)
		}
	}

	var routes []models.Route
	if err := query.Find(&routes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list routes: " + err.Error()})
		return
	}

	var responses []RouteResponse
	for _, r := range routes {
		responses = append(responses, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"routes": responses})
}

// GetRoute returns one route, document included, e.g. for a restore into
// the editor.
func GetRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// UpdateRoute updates route metadata and/or its document.
func UpdateRoute(c *gin.Context) {
	userID, ok := c.MustGet("user_id").(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid route ID in parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	if route.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the route author can update this route"})
		return
	}

	var input struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		RouteType   *string          `json:"route_type"`
		RouteData   *json.RawMessage `json:"route_data"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		route.Name = *input.Name
	}
	if input.Description != nil {
		route.Description = *input.Description
	}
	if input.RouteType != nil {
		route.RouteType = string(editor.ParseActivityType(*input.RouteType))
	}
	if input.RouteData != nil {
		fc, err := parseRouteDocument(*input.RouteData)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route data: " + err.Error()})
			return
		}
		route.RouteData = datatypes.JSON(*input.RouteData)
		route.DrawingType = deriveDrawingType(fc)
	}

	if err := config.DB.Save(&route).Error; err != nil {
		logrus.WithError(err).Error("UpdateRoute: failed to save updated route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// DeleteRoute removes a route owned by the authenticated user.
func DeleteRoute(c *gin.Context) {
	userID, ok := c.MustGet("user_id").(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	result := config.DB.Where("id = ? AND user_id = ?", rID, userID).Delete(&models.Route{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete route: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
