package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRouter wires a handler behind a stub identity middleware, the way
// the real router does behind AuthMiddleware. The handlers under test
// must reject before reaching the store.
func testRouter(method, path string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	identity := func(c *gin.Context) {
		c.Set("salonId", uuid.New().String())
		c.Set("userId", uuid.New().String())
	}
	r.Handle(method, path, identity, handler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validTransactionBody() map[string]interface{} {
	return map[string]interface{}{
		"type":        "IN",
		"name":        "Product sale",
		"occurredAt":  "2026-09-07T14:00:00Z",
		"amountCents": 1500,
	}
}

func TestCreateTransactionRejectsNonPositiveAmount(t *testing.T) {
	r := testRouter(http.MethodPost, "/transactions", CreateTransaction)

	body := validTransactionBody()
	body["amountCents"] = 0
	w := postJSON(t, r, "/transactions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["amountCents"] = -5
	w = postJSON(t, r, "/transactions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTransactionRejectsFractionalAmount(t *testing.T) {
	r := testRouter(http.MethodPost, "/transactions", CreateTransaction)

	body := validTransactionBody()
	body["amountCents"] = 15.5
	w := postJSON(t, r, "/transactions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTransactionRejectsBadType(t *testing.T) {
	r := testRouter(http.MethodPost, "/transactions", CreateTransaction)

	body := validTransactionBody()
	body["type"] = "TRANSFER"
	w := postJSON(t, r, "/transactions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTransactionRejectsShortName(t *testing.T) {
	r := testRouter(http.MethodPost, "/transactions", CreateTransaction)

	body := validTransactionBody()
	body["name"] = " x "
	w := postJSON(t, r, "/transactions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTransactionRejectsBadTimestamp(t *testing.T) {
	r := testRouter(http.MethodPost, "/transactions", CreateTransaction)

	body := validTransactionBody()
	body["occurredAt"] = "07/09/2026 14:00"
	w := postJSON(t, r, "/transactions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTransactionRejectsMissingFields(t *testing.T) {
	r := testRouter(http.MethodPost, "/transactions", CreateTransaction)

	w := postJSON(t, r, "/transactions", map[string]interface{}{"type": "IN"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAppointmentRejectsBadInput(t *testing.T) {
	r := testRouter(http.MethodPost, "/appointments", CreateAppointment)

	// Missing required fields
	w := postJSON(t, r, "/appointments", map[string]interface{}{"clientId": uuid.New().String()})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unparsable startAt
	w = postJSON(t, r, "/appointments", map[string]interface{}{
		"clientId":  uuid.New().String(),
		"serviceId": uuid.New().String(),
		"startAt":   "tomorrow at ten",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed entity ids
	w = postJSON(t, r, "/appointments", map[string]interface{}{
		"clientId":  "not-a-uuid",
		"serviceId": uuid.New().String(),
		"startAt":   "2026-09-07T10:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAppointmentsRejectsBadRange(t *testing.T) {
	r := testRouter(http.MethodGet, "/appointments", ListAppointments)

	get := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/appointments"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, get("").Code)
	assert.Equal(t, http.StatusBadRequest, get("?from=2026-09-07T00:00:00Z").Code)
	assert.Equal(t, http.StatusBadRequest, get("?from=bad&to=2026-09-08T00:00:00Z").Code)
	// from == to is an empty range
	assert.Equal(t, http.StatusBadRequest,
		get("?from=2026-09-07T00:00:00Z&to=2026-09-07T00:00:00Z").Code)
	// inverted
	assert.Equal(t, http.StatusBadRequest,
		get("?from=2026-09-08T00:00:00Z&to=2026-09-07T00:00:00Z").Code)
}
