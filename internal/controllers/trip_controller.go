package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dive_trails/internal/config"
	"dive_trails/internal/models"
)

// ListTrips returns trip listings, optionally filtered by site or operator.
func ListTrips(c *gin.Context) {
	query := config.DB.Model(&models.Trip{})
	if siteID := c.Query("site_id"); siteID != "" {
		query = query.Where("site_id = ?", siteID)
	}
	if operatorID := c.Query("operator_id"); operatorID != "" {
		query = query.Where("operator_id = ?", operatorID)
	}

	var trips []models.Trip
	if err := query.Order("date asc").Find(&trips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list trips: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// CreateTrip lets an operator publish a trip at a dive site.
func CreateTrip(c *gin.Context) {
	userID, ok := c.MustGet("user_id").(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}

	var operator models.DiveOperator
	if err := config.DB.Where("user_id = ?", userID).First(&operator).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only operators can create trips"})
		return
	}

	var input struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		Date        time.Time `json:"date" binding:"required"`
		Price       float64   `json:"price"`
		Capacity    int       `json:"capacity"`
		SiteID      uint      `json:"site_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateTrip: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var site models.DiveSite
	if err := config.DB.First(&site, input.SiteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "site does not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	trip := models.Trip{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Price:       input.Price,
		Capacity:    input.Capacity,
		SiteID:      input.SiteID,
		OperatorID:  operator.ID,
	}
	if err := config.DB.Create(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create trip failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// DeleteTrip removes a trip owned by the authenticated operator.
func DeleteTrip(c *gin.Context) {
	userID, ok := c.MustGet("user_id").(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}
	tID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip ID"})
		return
	}

	var operator models.DiveOperator
	if err := config.DB.Where("user_id = ?", userID).First(&operator).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only operators can delete trips"})
		return
	}

	result := config.DB.Where("id = ? AND operator_id = ?", tID, operator.ID).Delete(&models.Trip{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted successfully"})
}
