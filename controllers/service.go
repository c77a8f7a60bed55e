// controllers/service.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name       string `json:"name" binding:"required"`
	Category   string `json:"category"`
	PriceCents *int   `json:"priceCents" binding:"required"`
	DurationM  *int   `json:"durationM" binding:"required"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name       *string `json:"name"`
	Category   *string `json:"category"`
	PriceCents *int    `json:"priceCents"`
	DurationM  *int    `json:"durationM"`
	IsActive   *bool   `json:"isActive"`
}

// CreateService creates a new service for the salon
func CreateService(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if len(strings.TrimSpace(input.Name)) < 2 {
		utils.RespondWithError(c, http.StatusBadRequest, "Service name must have at least 2 characters")
		return
	}
	if *input.PriceCents < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "priceCents must not be negative")
		return
	}
	if *input.DurationM <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "durationM must be a positive number of minutes")
		return
	}

	service := models.Service{
		SalonID:    salonID,
		Name:       strings.TrimSpace(input.Name),
		Category:   strings.TrimSpace(input.Category),
		PriceCents: *input.PriceCents,
		DurationM:  *input.DurationM,
		IsActive:   true,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves the salon's services, optionally filtered by
// ?active=true/false
func GetServices(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	query := config.DB.Where("salon_id = ?", salonID)
	switch c.Query("active") {
	case "true":
		query = query.Where("is_active = ?", true)
	case "false":
		query = query.Where("is_active = ?", false)
	}

	var services []models.Service
	if err := query.Order("created_at desc").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("salon_id = ? AND id = ?", salonID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("salon_id = ? AND id = ?", salonID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		if len(strings.TrimSpace(*input.Name)) < 2 {
			utils.RespondWithError(c, http.StatusBadRequest, "Service name must have at least 2 characters")
			return
		}
		service.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		service.Category = strings.TrimSpace(*input.Category)
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "priceCents must not be negative")
			return
		}
		service.PriceCents = *input.PriceCents
	}
	if input.DurationM != nil {
		if *input.DurationM <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "durationM must be a positive number of minutes")
			return
		}
		service.DurationM = *input.DurationM
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService deactivates a service. Past appointments keep referencing
// it, so rows are never removed.
func DeleteService(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("salon_id = ? AND id = ?", salonID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&service).Update("is_active", false).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate service")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deactivated successfully"})
}
