package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonflow-backend/config"
	"salonflow-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// schedulingFixture runs the appointment handlers against an in-memory
// sqlite store seeded with one salon, one client and one service.
type schedulingFixture struct {
	router  *gin.Engine
	salon   models.Salon
	client  models.Client
	service models.Service
}

func newSchedulingFixture(t *testing.T, durationM int) *schedulingFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Salon{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
	))
	config.DB = db

	f := &schedulingFixture{
		salon: models.Salon{
			Name: "Studio A",
			Plan: models.PlanFree,
		},
		client: models.Client{
			Name:     "Ana",
			Phone:    "+5511999990001",
			IsActive: true,
		},
		service: models.Service{
			Name:       "Cut",
			PriceCents: 5000,
			DurationM:  durationM,
			IsActive:   true,
		},
	}
	require.NoError(t, db.Create(&f.salon).Error)
	f.client.SalonID = f.salon.ID
	f.service.SalonID = f.salon.ID
	require.NoError(t, db.Create(&f.client).Error)
	require.NoError(t, db.Create(&f.service).Error)

	r := gin.New()
	identity := func(c *gin.Context) {
		c.Set("salonId", f.salon.ID.String())
		c.Set("userId", uuid.New().String())
	}
	r.POST("/appointments", identity, CreateAppointment)
	r.PUT("/appointments/:id", identity, UpdateAppointment)
	f.router = r
	return f
}

func (f *schedulingFixture) send(t *testing.T, method, path string, body map[string]interface{}) (*httptest.ResponseRecorder, AppointmentResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp AppointmentResponse
	if w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (f *schedulingFixture) create(t *testing.T, startAt string) (*httptest.ResponseRecorder, AppointmentResponse) {
	t.Helper()
	return f.send(t, http.MethodPost, "/appointments", map[string]interface{}{
		"clientId":  f.client.ID.String(),
		"serviceId": f.service.ID.String(),
		"startAt":   startAt,
	})
}

func TestCreateAppointmentDerivesEndAt(t *testing.T) {
	f := newSchedulingFixture(t, 60)

	w, resp := f.create(t, "2026-09-07T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, models.AppointmentPending, resp.Status)
	assert.True(t, resp.EndAt.Equal(resp.StartAt.Add(60*time.Minute)),
		"endAt must be startAt plus the service duration")
	assert.Equal(t, f.service.ID, resp.Service.ID)
	assert.Equal(t, f.client.ID, resp.Client.ID)

	// Round-trips through the store unchanged
	var stored models.Appointment
	require.NoError(t, config.DB.First(&stored, "id = ?", resp.ID).Error)
	assert.True(t, stored.EndAt.Equal(stored.StartAt.Add(60*time.Minute)))
}

func TestCreateAppointmentOverlapConflicts(t *testing.T) {
	f := newSchedulingFixture(t, 30)

	w, _ := f.create(t, "2026-09-07T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// [10:00,10:30) vs [10:15,10:45)
	w, _ = f.create(t, "2026-09-07T10:15:00Z")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Touching the boundary is free: [10:30,11:00)
	w, _ = f.create(t, "2026-09-07T10:30:00Z")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateAppointmentIgnoresCanceledOverlap(t *testing.T) {
	f := newSchedulingFixture(t, 30)

	w, resp := f.create(t, "2026-09-07T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = f.send(t, http.MethodPut, "/appointments/"+resp.ID.String(), map[string]interface{}{
		"status": models.AppointmentCanceled,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The canceled slot no longer blocks the interval
	w, _ = f.create(t, "2026-09-07T10:15:00Z")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestUpdateAppointmentRecomputesEndAtOnServiceChange(t *testing.T) {
	f := newSchedulingFixture(t, 30)

	w, created := f.create(t, "2026-09-07T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	long := models.Service{
		SalonID:    f.salon.ID,
		Name:       "Color",
		PriceCents: 12000,
		DurationM:  90,
		IsActive:   true,
	}
	require.NoError(t, config.DB.Create(&long).Error)

	w, updated := f.send(t, http.MethodPut, "/appointments/"+created.ID.String(), map[string]interface{}{
		"serviceId": long.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, long.ID, updated.Service.ID)
	assert.True(t, updated.StartAt.Equal(created.StartAt))
	assert.True(t, updated.EndAt.Equal(created.StartAt.Add(90*time.Minute)),
		"endAt must follow the new service's duration")
}

func TestUpdateAppointmentRecomputesEndAtOnReschedule(t *testing.T) {
	f := newSchedulingFixture(t, 30)

	w, created := f.create(t, "2026-09-07T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, updated := f.send(t, http.MethodPut, "/appointments/"+created.ID.String(), map[string]interface{}{
		"startAt": "2026-09-07T14:00:00Z",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	want := time.Date(2026, 9, 7, 14, 30, 0, 0, time.UTC)
	assert.True(t, updated.EndAt.Equal(want), "got %s", updated.EndAt)
}

func TestUpdateAppointmentConflictExcludesSelf(t *testing.T) {
	f := newSchedulingFixture(t, 30)

	w, _ := f.create(t, "2026-09-07T10:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, second := f.create(t, "2026-09-07T11:00:00Z")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Moving onto the first appointment conflicts
	w, _ = f.send(t, http.MethodPut, "/appointments/"+second.ID.String(), map[string]interface{}{
		"startAt": "2026-09-07T10:15:00Z",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Shifting within its own slot does not: the check excludes the
	// appointment being updated
	w, updated := f.send(t, http.MethodPut, "/appointments/"+second.ID.String(), map[string]interface{}{
		"startAt": "2026-09-07T11:05:00Z",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, updated.EndAt.Equal(updated.StartAt.Add(30*time.Minute)))
}
