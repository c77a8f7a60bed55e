// controllers/finance.go
package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FlowSummary breaks down the cash movement of a period. Automatic income
// is derived from finalized appointments; manual OUT is the only expense
// channel.
type FlowSummary struct {
	InCents        int `json:"inCents"`
	OutCents       int `json:"outCents"`
	BalanceCents   int `json:"balanceCents"`
	AutoInCents    int `json:"autoInCents"`
	ManualInCents  int `json:"manualInCents"`
	ManualOutCents int `json:"manualOutCents"`
}

type DayTotal struct {
	Day        string `json:"day"` // local "YYYY-MM-DD"
	TotalCents int    `json:"totalCents"`
	Count      int    `json:"count"`
}

type ServiceTotal struct {
	ServiceID  uuid.UUID `json:"serviceId"`
	Name       string    `json:"name"`
	TotalCents int       `json:"totalCents"`
	Count      int       `json:"count"`
}

type FinalizedAppointment struct {
	ID          uuid.UUID `json:"id"`
	StartAt     time.Time `json:"startAt"`
	ClientName  string    `json:"clientName"`
	ServiceName string    `json:"serviceName"`
	PriceCents  int       `json:"priceCents"`
}

type PeriodTotals struct {
	TotalCents int `json:"totalCents"`
	TotalCount int `json:"totalCount"`
}

type FinanceSummary struct {
	Totals        PeriodTotals           `json:"totals"`
	ByDay         []DayTotal             `json:"byDay"`
	ByService     []ServiceTotal         `json:"byService"`
	LastFinalized []FinalizedAppointment `json:"lastFinalized"`
	Flow          FlowSummary            `json:"flow"`
}

// buildFlow computes the period flow from finalized appointments and
// manual ledger entries already filtered to the period.
func buildFlow(done []models.Appointment, manual []models.CashTransaction) FlowSummary {
	autoIn := 0
	for _, a := range done {
		autoIn += a.Service.PriceCents
	}

	manualIn, manualOut := 0, 0
	for _, t := range manual {
		switch t.Type {
		case models.TransactionIn:
			manualIn += t.AmountCents
		case models.TransactionOut:
			manualOut += t.AmountCents
		}
	}

	in := autoIn + manualIn
	out := manualOut
	return FlowSummary{
		InCents:        in,
		OutCents:       out,
		BalanceCents:   in - out,
		AutoInCents:    autoIn,
		ManualInCents:  manualIn,
		ManualOutCents: manualOut,
	}
}

// buildSummary aggregates finalized appointments, expected in descending
// startAt order, into totals and day/service buckets.
func buildSummary(done []models.Appointment) (PeriodTotals, []DayTotal, []ServiceTotal, []FinalizedAppointment) {
	totals := PeriodTotals{TotalCount: len(done)}
	for _, a := range done {
		totals.TotalCents += a.Service.PriceCents
	}

	byDayMap := make(map[string]*DayTotal)
	for _, a := range done {
		k := utils.DayKey(a.StartAt)
		cur, ok := byDayMap[k]
		if !ok {
			cur = &DayTotal{Day: k}
			byDayMap[k] = cur
		}
		cur.TotalCents += a.Service.PriceCents
		cur.Count++
	}
	byDay := make([]DayTotal, 0, len(byDayMap))
	for _, v := range byDayMap {
		byDay = append(byDay, *v)
	}
	sort.Slice(byDay, func(i, j int) bool { return byDay[i].Day < byDay[j].Day })

	byServiceMap := make(map[uuid.UUID]*ServiceTotal)
	for _, a := range done {
		if a.Service.ID == uuid.Nil {
			continue
		}
		cur, ok := byServiceMap[a.ServiceID]
		if !ok {
			cur = &ServiceTotal{ServiceID: a.ServiceID, Name: a.Service.Name}
			byServiceMap[a.ServiceID] = cur
		}
		cur.TotalCents += a.Service.PriceCents
		cur.Count++
	}
	byService := make([]ServiceTotal, 0, len(byServiceMap))
	for _, v := range byServiceMap {
		byService = append(byService, *v)
	}
	sort.Slice(byService, func(i, j int) bool { return byService[i].TotalCents > byService[j].TotalCents })

	limit := len(done)
	if limit > 10 {
		limit = 10
	}
	last := make([]FinalizedAppointment, 0, limit)
	for _, a := range done[:limit] {
		clientName := a.Client.Name
		if clientName == "" {
			clientName = "-"
		}
		serviceName := a.Service.Name
		if serviceName == "" {
			serviceName = "-"
		}
		last = append(last, FinalizedAppointment{
			ID:          a.ID,
			StartAt:     a.StartAt,
			ClientName:  clientName,
			ServiceName: serviceName,
			PriceCents:  a.Service.PriceCents,
		})
	}

	return totals, byDay, byService, last
}

// parsePeriod validates the from/to query pair shared by every range
// endpoint.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "from and to are required in RFC 3339 format")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "from and to are required in RFC 3339 format")
		return time.Time{}, time.Time{}, false
	}
	if !from.Before(to) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid range: from must be before to")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func fetchFinalized(salonID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	var done []models.Appointment
	err := config.DB.Preload("Client").Preload("Service").
		Where("salon_id = ? AND status = ? AND start_at >= ? AND start_at < ?",
			salonID, models.AppointmentDone, from, to).
		Order("start_at desc").
		Find(&done).Error
	return done, err
}

func fetchManualTransactions(salonID uuid.UUID, from, to time.Time) ([]models.CashTransaction, error) {
	var manual []models.CashTransaction
	err := config.DB.
		Where("salon_id = ? AND source = ? AND occurred_at >= ? AND occurred_at < ?",
			salonID, models.SourceManual, from, to).
		Find(&manual).Error
	return manual, err
}

// GetFinanceFlow returns the period cash flow
func GetFinanceFlow(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	done, err := fetchFinalized(salonID, from, to)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute flow")
		return
	}
	manual, err := fetchManualTransactions(salonID, from, to)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute flow")
		return
	}

	c.JSON(http.StatusOK, gin.H{"flow": buildFlow(done, manual)})
}

// GetFinanceSummary returns period totals, day and service buckets, the
// latest finalized appointments and the embedded flow.
func GetFinanceSummary(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	done, err := fetchFinalized(salonID, from, to)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute summary")
		return
	}
	manual, err := fetchManualTransactions(salonID, from, to)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	totals, byDay, byService, last := buildSummary(done)

	c.JSON(http.StatusOK, FinanceSummary{
		Totals:        totals,
		ByDay:         byDay,
		ByService:     byService,
		LastFinalized: last,
		Flow:          buildFlow(done, manual),
	})
}

// CreateCategoryInput defines the expected JSON structure for a category
type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"` // optional: IN | OUT
}

// GetCategories lists the salon's cash categories
func GetCategories(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	var categories []models.CashCategory
	if err := config.DB.Where("salon_id = ?", salonID).
		Order("name asc").Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CreateCategory creates a cash category; names are unique per salon
func CreateCategory(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		utils.RespondWithError(c, http.StatusBadRequest, "Category name must have at least 2 characters")
		return
	}

	var catType *string
	if input.Type != "" {
		t := strings.ToUpper(input.Type)
		if t != models.TransactionIn && t != models.TransactionOut {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid category type (IN/OUT)")
			return
		}
		catType = &t
	}

	var existing models.CashCategory
	result := config.DB.Where("salon_id = ? AND name = ?", salonID, name).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "A category with this name already exists")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	category := models.CashCategory{
		SalonID: salonID,
		Name:    name,
		Type:    catType,
	}

	if err := config.DB.Create(&category).Error; err != nil {
		// Unique index backs up the pre-check
		utils.RespondWithError(c, http.StatusConflict, "A category with this name already exists")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// CreateTransactionInput defines the expected JSON structure for a manual
// ledger entry
type CreateTransactionInput struct {
	Type        string `json:"type" binding:"required"`
	Name        string `json:"name" binding:"required"`
	OccurredAt  string `json:"occurredAt" binding:"required"` // RFC 3339
	AmountCents *int   `json:"amountCents" binding:"required"`
	CategoryID  string `json:"categoryId"`
	Notes       string `json:"notes"`
}

// UpdateTransactionInput is a partial patch; type and source are
// immutable. An empty categoryId clears the category.
type UpdateTransactionInput struct {
	Name        *string `json:"name"`
	OccurredAt  *string `json:"occurredAt"`
	AmountCents *int    `json:"amountCents"`
	CategoryID  *string `json:"categoryId"`
	Notes       *string `json:"notes"`
}

// TransactionResponse carries a transaction with its joined category
type TransactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Type        string           `json:"type"`
	Source      string           `json:"source"`
	Name        string           `json:"name"`
	OccurredAt  time.Time        `json:"occurredAt"`
	AmountCents int              `json:"amountCents"`
	Notes       string           `json:"notes,omitempty"`
	Category    *CategorySummary `json:"category"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func transactionResponse(t models.CashTransaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Source:      t.Source,
		Name:        t.Name,
		OccurredAt:  t.OccurredAt,
		AmountCents: t.AmountCents,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
	if t.Category != nil {
		resp.Category = &CategorySummary{ID: t.Category.ID, Name: t.Category.Name}
	}
	return resp
}

// loadCategoryForType resolves a category in the salon and checks its type
// restriction against the transaction type.
func loadCategoryForType(c *gin.Context, salonID uuid.UUID, rawID, txType string) (*uuid.UUID, bool) {
	categoryUUID, err := uuid.Parse(rawID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid categoryId format")
		return nil, false
	}

	var category models.CashCategory
	if err := config.DB.Where("id = ? AND salon_id = ?", categoryUUID, salonID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	if category.Type != nil && *category.Type != txType {
		utils.RespondWithError(c, http.StatusBadRequest, "Category is not compatible with the transaction type (IN/OUT)")
		return nil, false
	}

	return &category.ID, true
}

// GetTransactions lists manual transactions in [from, to), newest first,
// optionally filtered by ?type= and ?categoryId=
func GetTransactions(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Category").
		Where("salon_id = ? AND source = ? AND occurred_at >= ? AND occurred_at < ?",
			salonID, models.SourceManual, from, to)

	if t := strings.ToUpper(c.Query("type")); t != "" {
		query = query.Where("type = ?", t)
	}
	if rawID := c.Query("categoryId"); rawID != "" {
		categoryUUID, err := uuid.Parse(rawID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid categoryId format")
			return
		}
		query = query.Where("category_id = ?", categoryUUID)
	}

	var transactions []models.CashTransaction
	if err := query.Order("occurred_at desc").Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, transactionResponse(t))
	}

	c.JSON(http.StatusOK, out)
}

// CreateTransaction records a manual ledger entry
func CreateTransaction(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	var input CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "type, name, occurredAt and amountCents are required")
		return
	}

	txType := strings.ToUpper(input.Type)
	if txType != models.TransactionIn && txType != models.TransactionOut {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid type (IN/OUT)")
		return
	}

	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		utils.RespondWithError(c, http.StatusBadRequest, "Name must have at least 2 characters")
		return
	}

	occurredAt, err := time.Parse(time.RFC3339, input.OccurredAt)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid occurredAt (use RFC 3339)")
		return
	}

	if *input.AmountCents <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "amountCents must be a positive integer")
		return
	}

	var categoryID *uuid.UUID
	if input.CategoryID != "" {
		categoryID, ok = loadCategoryForType(c, salonID, input.CategoryID, txType)
		if !ok {
			return
		}
	}

	transaction := models.CashTransaction{
		SalonID:         salonID,
		CreatedByUserID: utils.UserID(c),
		Type:            txType,
		Source:          models.SourceManual,
		Name:            name,
		OccurredAt:      occurredAt,
		AmountCents:     *input.AmountCents,
		CategoryID:      categoryID,
		Notes:           strings.TrimSpace(input.Notes),
	}

	if err := config.DB.Create(&transaction).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	if transaction.CategoryID != nil {
		config.DB.Preload("Category").First(&transaction, "id = ?", transaction.ID)
	}

	c.JSON(http.StatusCreated, transactionResponse(transaction))
}

// UpdateTransaction patches a manual transaction. The type is immutable;
// a new category is validated against the stored type.
func UpdateTransaction(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	transactionUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	var transaction models.CashTransaction
	if err := config.DB.Where("id = ? AND salon_id = ? AND source = ?",
		transactionUUID, salonID, models.SourceManual).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 2 {
			utils.RespondWithError(c, http.StatusBadRequest, "Name must have at least 2 characters")
			return
		}
		transaction.Name = name
	}

	if input.OccurredAt != nil {
		occurredAt, err := time.Parse(time.RFC3339, *input.OccurredAt)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid occurredAt (use RFC 3339)")
			return
		}
		transaction.OccurredAt = occurredAt
	}

	if input.AmountCents != nil {
		if *input.AmountCents <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "amountCents must be a positive integer")
			return
		}
		transaction.AmountCents = *input.AmountCents
	}

	if input.Notes != nil {
		transaction.Notes = strings.TrimSpace(*input.Notes)
	}

	if input.CategoryID != nil {
		if *input.CategoryID == "" {
			transaction.CategoryID = nil
		} else {
			categoryID, ok := loadCategoryForType(c, salonID, *input.CategoryID, transaction.Type)
			if !ok {
				return
			}
			transaction.CategoryID = categoryID
		}
	}

	if err := config.DB.Save(&transaction).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	var updated models.CashTransaction
	if err := config.DB.Preload("Category").
		First(&updated, "id = ?", transaction.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, transactionResponse(updated))
}

// DeleteTransaction removes a manual transaction permanently
func DeleteTransaction(c *gin.Context) {
	salonID, ok := utils.SalonID(c)
	if !ok {
		return
	}

	transactionUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	var transaction models.CashTransaction
	if err := config.DB.Where("id = ? AND salon_id = ? AND source = ?",
		transactionUUID, salonID, models.SourceManual).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&transaction).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
