// utils/plan.go
package utils

import (
	"errors"
	"net/http"

	"salonflow-backend/config"
	"salonflow-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Per-plan creation quotas. PRO is unlimited.
var freePlanLimits = map[string]int64{
	"clients":      50,
	"services":     15,
	"transactions": 200,
}

// CheckLimit gates a create route on the salon's plan quota for the given
// resource. Runs after AuthMiddleware.
func CheckLimit(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		salonID, ok := SalonID(c)
		if !ok {
			c.Abort()
			return
		}

		var salon models.Salon
		if err := config.DB.Select("plan").First(&salon, "id = ?", salonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				RespondWithError(c, http.StatusNotFound, "Salon not found")
			} else {
				RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			c.Abort()
			return
		}

		if salon.Plan == models.PlanPro {
			c.Next()
			return
		}

		limit, known := freePlanLimits[resource]
		if !known {
			c.Next()
			return
		}

		count, err := countResource(resource, salonID)
		if err != nil {
			RespondWithError(c, http.StatusInternalServerError, "Database error")
			c.Abort()
			return
		}

		if count >= limit {
			RespondWithError(c, http.StatusForbidden, "Plan limit reached for "+resource)
			c.Abort()
			return
		}

		c.Next()
	}
}

func countResource(resource string, salonID uuid.UUID) (int64, error) {
	var count int64
	var err error
	switch resource {
	case "clients":
		err = config.DB.Model(&models.Client{}).Where("salon_id = ?", salonID).Count(&count).Error
	case "services":
		err = config.DB.Model(&models.Service{}).Where("salon_id = ?", salonID).Count(&count).Error
	case "transactions":
		err = config.DB.Model(&models.CashTransaction{}).Where("salon_id = ?", salonID).Count(&count).Error
	}
	return count, err
}
