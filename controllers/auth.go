// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Name         string `json:"name" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	SalonName    string `json:"salonName" binding:"required"`
	SalonPhone   string `json:"salonPhone"`
	SalonAddress string `json:"salonAddress"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates the salon and its owner account in one transaction and
// issues a token scoped to the new tenant.
func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if email already exists
	var existingUser models.User
	result := config.DB.Where("email = ?", input.Email).First(&existingUser)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	salon := models.Salon{
		Name:    strings.TrimSpace(input.SalonName),
		Phone:   strings.TrimSpace(input.SalonPhone),
		Address: strings.TrimSpace(input.SalonAddress),
		Plan:    models.PlanFree,
	}

	newUser := models.User{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // hashed in BeforeCreate hook
		Role:     "owner",
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&salon).Error; err != nil {
			return err
		}
		newUser.SalonID = salon.ID
		return tx.Create(&newUser).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), salon.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":        newUser.ID,
			"email":     newUser.Email,
			"name":      newUser.Name,
			"salonId":   salon.ID,
			"salonName": salon.Name,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	email := strings.TrimSpace(input.Email)

	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.SalonID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// Update last login
	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":      user.ID,
			"email":   user.Email,
			"name":    user.Name,
			"salonId": user.SalonID,
		},
	})
}

func Me(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}
	userID := utils.UserID(c)

	var user models.User
	if err := config.DB.Preload("Salon").
		Where("id = ? AND salon_id = ?", userID, salonID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
		"salon": gin.H{
			"id":   user.Salon.ID,
			"name": user.Salon.Name,
			"plan": user.Salon.Plan,
		},
	})
}
