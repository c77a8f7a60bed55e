// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"salonflow-backend/models"
	"salonflow-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Appointment reminder scheduler started")
}

// SendDailyReminders notifies every salon's clients about tomorrow's
// appointments.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var salons []models.Salon
	if err := s.db.Find(&salons).Error; err != nil {
		log.Printf("Failed to fetch salons: %v", err)
		return
	}

	for _, salon := range salons {
		s.ProcessSalonReminders(salon.ID)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) ProcessSalonReminders(salonID uuid.UUID) {
	appointments, err := s.upcomingAppointments(salonID)
	if err != nil {
		log.Printf("Salon %s: Failed to get upcoming appointments: %v", salonID, err)
		return
	}

	s.sendReminders(salonID, appointments)
}

// upcomingAppointments returns tomorrow's non-canceled appointments that
// have not been reminded yet.
func (s *ReminderService) upcomingAppointments(salonID uuid.UUID) ([]models.Appointment, error) {
	dayStart := utils.BeginningOfDay(time.Now()).AddDate(0, 0, 1)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := s.db.Preload("Client").Preload("Service").
		Where("salon_id = ? AND status <> ? AND start_at >= ? AND start_at < ?",
			salonID, models.AppointmentCanceled, dayStart, dayEnd).
		Where("id NOT IN (?)", s.db.Model(&models.AppointmentReminderLog{}).
			Select("appointment_id").
			Where("salon_id = ? AND status = ?", salonID, "sent")).
		Order("start_at asc").
		Find(&appointments).Error
	return appointments, err
}

func (s *ReminderService) sendReminders(salonID uuid.UUID, appointments []models.Appointment) {
	for _, appointment := range appointments {
		if appointment.Client.Phone == "" {
			continue
		}

		message := fmt.Sprintf("Hi %s! Reminder: your %s appointment is tomorrow at %s.",
			appointment.Client.Name,
			appointment.Service.Name,
			appointment.StartAt.Format("15:04"))

		// Determine channel (WhatsApp if available, else SMS)
		channel := "sms"
		var to string

		// Use WhatsApp if phone is in E.164 format and starts with '+'
		if strings.HasPrefix(appointment.Client.Phone, "+") {
			to = "whatsapp:" + appointment.Client.Phone
			channel = "whatsapp"
		} else {
			to = appointment.Client.Phone
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetBody(message)

		if channel == "whatsapp" {
			params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
		} else {
			params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		}

		resp, err := s.client.Api.CreateMessage(params)
		status := "sent"
		errorMsg := ""

		if err != nil {
			log.Printf("Failed to send reminder to %s: %v", appointment.Client.Phone, err)
			status = "failed"
			errorMsg = err.Error()
		} else if resp.Sid != nil {
			log.Printf("Reminder sent to %s, SID: %s", appointment.Client.Phone, *resp.Sid)
		} else {
			log.Printf("Reminder sent to %s, but no SID returned", appointment.Client.Phone)
		}

		reminderLog := models.AppointmentReminderLog{
			SalonID:       salonID,
			AppointmentID: appointment.ID,
			ClientID:      appointment.ClientID,
			Message:       message,
			Status:        status,
			ErrorMessage:  errorMsg,
			Channel:       channel,
			SentAt:        time.Now(),
		}

		if err := s.db.Create(&reminderLog).Error; err != nil {
			log.Printf("Failed to log reminder for appointment %s: %v", appointment.ID, err)
		}
	}
}
