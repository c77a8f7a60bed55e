// controllers/client.go
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

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"isActive"`
}

// CreateClient creates a new client for the salon
func CreateClient(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if len(strings.TrimSpace(input.Name)) < 2 {
		utils.RespondWithError(c, http.StatusBadRequest, "Client name must have at least 2 characters")
		return
	}

	client := models.Client{
		SalonID:         salonID,
		CreatedByUserID: utils.UserID(c),
		Name:            strings.TrimSpace(input.Name),
		Phone:           strings.TrimSpace(input.Phone),
		Email:           strings.TrimSpace(input.Email),
		Notes:           input.Notes,
		IsActive:        true,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves all clients for the salon
func GetClients(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := config.DB.Where("salon_id = ?", salonID).
		Order("name asc").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client by ID
func GetClient(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Where("salon_id = ? AND id = ?", salonID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("salon_id = ? AND id = ?", salonID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		if len(strings.TrimSpace(*input.Name)) < 2 {
			utils.RespondWithError(c, http.StatusBadRequest, "Client name must have at least 2 characters")
			return
		}
		client.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		client.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		client.Email = strings.TrimSpace(*input.Email)
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.IsActive != nil {
		client.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes a client
func DeleteClient(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Where("salon_id = ? AND id = ?", salonID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
