package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dive_trails/internal/config"
	"dive_trails/internal/models"
)

// ListSites returns the dive site directory, optionally filtered by
// difficulty.
func ListSites(c *gin.Context) {
	query := config.DB.Model(&models.DiveSite{})
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var sites []models.DiveSite
	if err := query.Find(&sites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sites: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sites": sites})
}

// GetSite returns a single dive site with its routes and trips.
func GetSite(c *gin.Context) {
	sID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid site ID"})
		return
	}

	var site models.DiveSite
	if err := config.DB.Preload("Routes").Preload("Trips").First(&site, sID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": site})
}

// CreateSite adds a dive site to the directory.
func CreateSite(c *gin.Context) {
	var input models.DiveSite
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateSite: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create site failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"site": input})
}

// UpdateSite updates directory metadata for a site.
func UpdateSite(c *gin.Context) {
	sID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid site ID"})
		return
	}

	var site models.DiveSite
	if err := config.DB.First(&site, sID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Lat         *float64 `json:"lat"`
		Lng         *float64 `json:"lng"`
		MaxDepth    *float64 `json:"max_depth"`
		Difficulty  *string  `json:"difficulty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		site.Name = *input.Name
	}
	if input.Description != nil {
		site.Description = *input.Description
	}
	if input.Lat != nil {
		site.Lat = *input.Lat
	}
	if input.Lng != nil {
		site.Lng = *input.Lng
	}
	if input.MaxDepth != nil {
		site.MaxDepth = *input.MaxDepth
	}
	if input.Difficulty != nil {
		site.Difficulty = *input.Difficulty
	}

	if err := config.DB.Save(&site).Error; err != nil {
		logrus.WithError(err).Error("UpdateSite: failed to save site")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": site})
}

// DeleteSite removes a site from the directory.
func DeleteSite(c *gin.Context) {
	sID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid site ID"})
		return
	}

	if err := config.DB.Delete(&models.DiveSite{}, sID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete site: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Site deleted successfully"})
}
