// controllers/settings.go
package controllers

import (
	"errors"
	"net/http"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateHoursInput defines the expected JSON structure for the
// business-hours configuration
type UpdateHoursInput struct {
	OpenTime          *string `json:"openTime"`  // "HH:MM"
	CloseTime         *string `json:"closeTime"` // "HH:MM"
	WorkingDays       *[]int  `json:"workingDays"`
	BlockOutsideHours *bool   `json:"blockOutsideHours"`
}

// GetSettings returns the salon profile and business-hours configuration
func GetSettings(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": gin.H{
			"openTime":          salon.OpenTime,
			"closeTime":         salon.CloseTime,
			"workingDays":       salon.WorkingDays,
			"blockOutsideHours": salon.BlockOutsideHours,
		},
		"salon": gin.H{
			"id":      salon.ID,
			"name":    salon.Name,
			"phone":   salon.Phone,
			"address": salon.Address,
			"plan":    salon.Plan,
		},
	})
}

// UpdateBusinessHours updates the salon's scheduling window
func UpdateBusinessHours(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	var input UpdateHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.OpenTime != nil {
		if *input.OpenTime != "" {
			if _, valid := utils.ParseClock(*input.OpenTime); !valid {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid openTime (use HH:MM)")
				return
			}
		}
		salon.OpenTime = *input.OpenTime
	}
	if input.CloseTime != nil {
		if *input.CloseTime != "" {
			if _, valid := utils.ParseClock(*input.CloseTime); !valid {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid closeTime (use HH:MM)")
				return
			}
		}
		salon.CloseTime = *input.CloseTime
	}
	if input.WorkingDays != nil {
		for _, d := range *input.WorkingDays {
			if d < 0 || d > 6 {
				utils.RespondWithError(c, http.StatusBadRequest, "workingDays entries must be weekdays 0-6")
				return
			}
		}
		salon.WorkingDays = models.IntArray(*input.WorkingDays)
	}
	if input.BlockOutsideHours != nil {
		salon.BlockOutsideHours = *input.BlockOutsideHours
	}

	if err := config.DB.Save(&salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": gin.H{
			"openTime":          salon.OpenTime,
			"closeTime":         salon.CloseTime,
			"workingDays":       salon.WorkingDays,
			"blockOutsideHours": salon.BlockOutsideHours,
		},
	})
}
