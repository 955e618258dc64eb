package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dive_trails/internal/config"
	"dive_trails/internal/models"
)

// ListOperators returns the operator directory.
func ListOperators(c *gin.Context) {
	var operators []models.DiveOperator
	if err := config.DB.Find(&operators).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list operators: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"operators": operators})
}

// GetOperator returns one operator with its upcoming trips.
func GetOperator(c *gin.Context) {
	oID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid operator ID"})
		return
	}

	var operator models.DiveOperator
	if err := config.DB.Preload("Trips").First(&operator, oID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Operator not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"operator": operator})
}

// UpdateOperator lets the owning user update their listing.
func UpdateOperator(c *gin.Context) {
	userID, ok := c.MustGet("user_id").(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}

	var operator models.DiveOperator
	if err := config.DB.Where("user_id = ?", userID).First(&operator).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Operator profile not found"})
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Website     *string `json:"website"`
		Phone       *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		operator.Name = *input.Name
	}
	if input.Description != nil {
		operator.Description = *input.Description
	}
	if input.Website != nil {
		operator.Website = *input.Website
	}
	if input.Phone != nil {
		operator.Phone = *input.Phone
	}

	if err := config.DB.Save(&operator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"operator": operator})
}
