package controllers

import (
	"fmt"
	"testing"
	"time"

	"salonflow-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doneAppointment(startAt time.Time, serviceID uuid.UUID, serviceName string, priceCents int) models.Appointment {
	return models.Appointment{
		ID:        uuid.New(),
		ServiceID: serviceID,
		StartAt:   startAt,
		Status:    models.AppointmentDone,
		Client:    models.Client{ID: uuid.New(), Name: "Ana"},
		Service:   models.Service{ID: serviceID, Name: serviceName, PriceCents: priceCents},
	}
}

func manualTx(txType string, amountCents int) models.CashTransaction {
	return models.CashTransaction{
		ID:          uuid.New(),
		Type:        txType,
		Source:      models.SourceManual,
		AmountCents: amountCents,
	}
}

func TestBuildFlow(t *testing.T) {
	cut := uuid.New()
	day := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	done := []models.Appointment{
		doneAppointment(day, cut, "Cut", 5000),
		doneAppointment(day.Add(time.Hour), cut, "Cut", 3000),
	}
	manual := []models.CashTransaction{
		manualTx(models.TransactionIn, 1500),
		manualTx(models.TransactionOut, 2000),
		manualTx(models.TransactionOut, 500),
	}

	flow := buildFlow(done, manual)

	assert.Equal(t, 8000, flow.AutoInCents)
	assert.Equal(t, 1500, flow.ManualInCents)
	assert.Equal(t, 2500, flow.ManualOutCents)
	assert.Equal(t, 9500, flow.InCents)
	assert.Equal(t, 2500, flow.OutCents)
	assert.Equal(t, 7000, flow.BalanceCents)

	// Identities
	assert.Equal(t, flow.BalanceCents, flow.InCents-flow.OutCents)
	assert.Equal(t, flow.InCents, flow.AutoInCents+flow.ManualInCents)
}

func TestBuildFlowEmpty(t *testing.T) {
	flow := buildFlow(nil, nil)
	assert.Equal(t, FlowSummary{}, flow)
}

func TestBuildSummarySameDayBucket(t *testing.T) {
	cut := uuid.New()
	day := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	done := []models.Appointment{
		doneAppointment(day.Add(2*time.Hour), cut, "Cut", 5000),
		doneAppointment(day, cut, "Cut", 3000),
	}

	totals, byDay, byService, last := buildSummary(done)

	assert.Equal(t, 8000, totals.TotalCents)
	assert.Equal(t, 2, totals.TotalCount)

	require.Len(t, byDay, 1)
	assert.Equal(t, "2026-09-07", byDay[0].Day)
	assert.Equal(t, 8000, byDay[0].TotalCents)
	assert.Equal(t, 2, byDay[0].Count)

	require.Len(t, byService, 1)
	assert.Equal(t, 8000, byService[0].TotalCents)

	assert.Len(t, last, 2)
}

func TestBuildSummaryOrdering(t *testing.T) {
	cut := uuid.New()
	color := uuid.New()
	day1 := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	// Descending startAt, the order the store hands them over in
	done := []models.Appointment{
		doneAppointment(day2, color, "Color", 12000),
		doneAppointment(day1.Add(time.Hour), cut, "Cut", 3000),
		doneAppointment(day1, cut, "Cut", 3000),
	}

	totals, byDay, byService, _ := buildSummary(done)

	assert.Equal(t, 18000, totals.TotalCents)

	// byDay ascending by day key
	require.Len(t, byDay, 2)
	assert.Equal(t, "2026-09-07", byDay[0].Day)
	assert.Equal(t, "2026-09-08", byDay[1].Day)

	// byService descending by revenue
	require.Len(t, byService, 2)
	assert.Equal(t, "Color", byService[0].Name)
	assert.Equal(t, 12000, byService[0].TotalCents)
	assert.Equal(t, "Cut", byService[1].Name)
	assert.Equal(t, 6000, byService[1].TotalCents)

	// Bucket totals add back up to the period total
	dataSum := 0
	for _, d := range byDay {
		dataSum += d.TotalCents
	}
	assert.Equal(t, totals.TotalCents, dataSum)

	svcSum := 0
	for _, s := range byService {
		svcSum += s.TotalCents
	}
	assert.Equal(t, totals.TotalCents, svcSum)
}

func TestBuildSummaryLastFinalized(t *testing.T) {
	cut := uuid.New()
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	var done []models.Appointment
	for i := 0; i < 12; i++ {
		a := doneAppointment(base.Add(time.Duration(12-i)*time.Hour), cut, "Cut", 1000)
		a.Client.Name = fmt.Sprintf("Client %d", i)
		done = append(done, a)
	}

	_, _, _, last := buildSummary(done)

	// Capped at 10, keeping descending order
	require.Len(t, last, 10)
	assert.Equal(t, "Client 0", last[0].ClientName)
	assert.Equal(t, "Client 9", last[9].ClientName)
	assert.True(t, last[0].StartAt.After(last[9].StartAt))
}

func TestBuildSummaryMissingJoins(t *testing.T) {
	a := models.Appointment{
		ID:      uuid.New(),
		StartAt: time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		Status:  models.AppointmentDone,
		// Client and Service left zero: joined rows gone
	}

	_, _, _, last := buildSummary([]models.Appointment{a})

	require.Len(t, last, 1)
	assert.Equal(t, "-", last[0].ClientName)
	assert.Equal(t, "-", last[0].ServiceName)
	assert.Equal(t, 0, last[0].PriceCents)
}
