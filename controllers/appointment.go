// controllers/appointment.go
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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Duration assumed when the current service row of an appointment is gone
// and the update does not pick a new one.
const fallbackDurationMinutes = 30

// CreateAppointmentInput defines the expected JSON structure for booking
type CreateAppointmentInput struct {
	ClientID  string `json:"clientId" binding:"required"`
	ServiceID string `json:"serviceId" binding:"required"`
	StartAt   string `json:"startAt" binding:"required"` // RFC 3339
	Notes     string `json:"notes"`
}

// UpdateAppointmentInput defines the expected JSON structure for rescheduling
type UpdateAppointmentInput struct {
	StartAt   *string `json:"startAt"`
	ServiceID *string `json:"serviceId"`
	ClientID  *string `json:"clientId"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

// AppointmentResponse carries an appointment with its joined client and
// service summaries.
type AppointmentResponse struct {
	ID        uuid.UUID      `json:"id"`
	StartAt   time.Time      `json:"startAt"`
	EndAt     time.Time      `json:"endAt"`
	Status    string         `json:"status"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Client    ClientSummary  `json:"client"`
	Service   ServiceSummary `json:"service"`
}

type ClientSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

type ServiceSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	DurationM  int       `json:"durationM"`
	PriceCents int       `json:"priceCents"`
}

func appointmentResponse(a models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		StartAt:   a.StartAt,
		EndAt:     a.EndAt,
		Status:    a.Status,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		Client: ClientSummary{
			ID:    a.Client.ID,
			Name:  a.Client.Name,
			Phone: a.Client.Phone,
		},
		Service: ServiceSummary{
			ID:         a.Service.ID,
			Name:       a.Service.Name,
			DurationM:  a.Service.DurationM,
			PriceCents: a.Service.PriceCents,
		},
	}
}

// hasConflict reports whether a non-canceled appointment of the salon
// overlaps [start, end). The read-then-write sequence is not atomic: two
// concurrent bookings can both pass this check. Closing that race needs a
// range-exclusion constraint or a per-salon advisory lock at the store.
func hasConflict(salonID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := config.DB.Model(&models.Appointment{}).
		Where("salon_id = ? AND status <> ?", salonID, models.AppointmentCanceled).
		Where("start_at < ? AND end_at > ?", end, start)

	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func loadSalonHours(salonID uuid.UUID) (*models.Salon, error) {
	var salon models.Salon
	err := config.DB.
		Select("id", "open_time", "close_time", "working_days", "block_outside_hours").
		First(&salon, "id = ?", salonID).Error
	if err != nil {
		return nil, err
	}
	return &salon, nil
}

// ListAppointments returns the salon's appointments with startAt in
// [from, to), ascending.
func ListAppointments(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "from and to are required in RFC 3339 format (e.g. 2026-01-03T00:00:00Z)")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "from and to are required in RFC 3339 format (e.g. 2026-01-03T00:00:00Z)")
		return
	}
	if !from.Before(to) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid range: from must be before to")
		return
	}

	var appointments []models.Appointment
	if err := config.DB.Preload("Client").Preload("Service").
		Where("salon_id = ? AND start_at >= ? AND start_at < ?", salonID, from, to).
		Order("start_at asc").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	out := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, appointmentResponse(a))
	}

	c.JSON(http.StatusOK, out)
}

// CreateAppointment books a PENDING appointment after the business-hours
// and conflict checks pass.
func CreateAppointment(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "clientId, serviceId and startAt are required")
		return
	}

	start, err := time.Parse(time.RFC3339, input.StartAt)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid startAt (use RFC 3339)")
		return
	}

	clientUUID, err := uuid.Parse(input.ClientID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid clientId format")
		return
	}
	serviceUUID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid serviceId format")
		return
	}

	var client models.Client
	if err := config.DB.Where("id = ? AND salon_id = ?", clientUUID, salonID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var service models.Service
	if err := config.DB.Where("id = ? AND salon_id = ? AND is_active = ?", serviceUUID, salonID, true).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found or inactive")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	end := start.Add(time.Duration(service.DurationM) * time.Minute)

	salon, err := loadSalonHours(salonID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !utils.WithinBusinessHours(start, end, salon) {
		utils.RespondWithError(c, http.StatusBadRequest, "Appointment is outside business hours")
		return
	}

	conflict, err := hasConflict(salonID, start, end, nil)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if conflict {
		utils.RespondWithError(c, http.StatusConflict, "Time conflict: another appointment occupies this interval")
		return
	}

	appointment := models.Appointment{
		SalonID:         salonID,
		ClientID:        client.ID,
		ServiceID:       service.ID,
		CreatedByUserID: utils.UserID(c),
		StartAt:         start,
		EndAt:           end,
		Status:          models.AppointmentPending,
		Notes:           strings.TrimSpace(input.Notes),
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	appointment.Client = client
	appointment.Service = service

	c.JSON(http.StatusCreated, appointmentResponse(appointment))
}

// UpdateAppointment applies a partial update. End time is only recomputed
// when startAt or serviceId changes; only then do the conflict and
// business-hours checks run again.
func UpdateAppointment(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var current models.Appointment
	if err := config.DB.Where("id = ? AND salon_id = ?", appointmentUUID, salonID).
		First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Status != nil {
		if !models.ValidAppointmentStatus(*input.Status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		current.Status = *input.Status
	}

	if input.Notes != nil {
		current.Notes = strings.TrimSpace(*input.Notes)
	}

	if input.ClientID != nil {
		clientUUID, err := uuid.Parse(*input.ClientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid clientId format")
			return
		}
		var client models.Client
		if err := config.DB.Where("id = ? AND salon_id = ?", clientUUID, salonID).
			First(&client).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Client not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		current.ClientID = client.ID
	}

	newStart := current.StartAt
	if input.StartAt != nil {
		parsed, err := time.Parse(time.RFC3339, *input.StartAt)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid startAt (use RFC 3339)")
			return
		}
		newStart = parsed
		current.StartAt = parsed
	}

	durationM := 0
	if input.ServiceID != nil {
		serviceUUID, err := uuid.Parse(*input.ServiceID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid serviceId format")
			return
		}
		var service models.Service
		if err := config.DB.Where("id = ? AND salon_id = ? AND is_active = ?", serviceUUID, salonID, true).
			First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Service not found or inactive")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		current.ServiceID = service.ID
		durationM = service.DurationM
	} else {
		// Duration of the currently assigned service, in case the interval
		// needs recomputing. The row may have been removed meanwhile.
		var service models.Service
		err := config.DB.Where("id = ? AND salon_id = ?", current.ServiceID, salonID).
			First(&service).Error
		switch {
		case err == nil:
			durationM = service.DurationM
		case errors.Is(err, gorm.ErrRecordNotFound):
			durationM = fallbackDurationMinutes
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	if input.StartAt != nil || input.ServiceID != nil {
		newEnd := newStart.Add(time.Duration(durationM) * time.Minute)
		current.EndAt = newEnd

		conflict, err := hasConflict(salonID, newStart, newEnd, &current.ID)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if conflict {
			utils.RespondWithError(c, http.StatusConflict, "Time conflict: another appointment occupies this interval")
			return
		}

		salon, err := loadSalonHours(salonID)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if !utils.WithinBusinessHours(newStart, newEnd, salon) {
			utils.RespondWithError(c, http.StatusBadRequest, "Appointment is outside business hours")
			return
		}
	}

	if err := config.DB.Save(&current).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	var updated models.Appointment
	if err := config.DB.Preload("Client").Preload("Service").
		First(&updated, "id = ?", current.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, appointmentResponse(updated))
}

// DeleteAppointment removes the row permanently
func DeleteAppointment(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Where("id = ? AND salon_id = ?", appointmentUUID, salonID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
