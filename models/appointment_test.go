package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAppointmentStatus(t *testing.T) {
	for _, s := range []string{AppointmentPending, AppointmentConfirmed, AppointmentDone, AppointmentCanceled} {
		assert.True(t, ValidAppointmentStatus(s), s)
	}

	for _, s := range []string{"", "pending", "DELETED", "Pending", "DONE "} {
		assert.False(t, ValidAppointmentStatus(s), s)
	}
}

func TestIntArrayContains(t *testing.T) {
	days := IntArray{1, 2, 3, 4, 5}

	assert.True(t, days.Contains(1))
	assert.True(t, days.Contains(5))
	assert.False(t, days.Contains(0))
	assert.False(t, days.Contains(6))
	assert.False(t, IntArray(nil).Contains(1))
}
