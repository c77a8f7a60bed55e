package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionIn  = "IN"
	TransactionOut = "OUT"

	// Only MANUAL transactions are ever stored; AUTO revenue is synthesized
	// from finalized appointments at aggregation time.
	SourceManual = "MANUAL"
)

type CashCategory struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_salon_category_name,priority:1"`
	Name    string    `gorm:"not null;uniqueIndex:idx_salon_category_name,priority:2"`
	// Optional restriction: when set, only transactions of this type may
	// reference the category.
	Type *string `gorm:"type:varchar(3)"` // "IN" | "OUT" | NULL

	Transactions []CashTransaction `gorm:"foreignKey:CategoryID"`

	CreatedAt time.Time
}

func (c *CashCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type CashTransaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	Type        string     `gorm:"type:varchar(3);not null"` // "IN" | "OUT", immutable
	Source      string     `gorm:"type:varchar(10);default:'MANUAL'"`
	Name        string     `gorm:"not null"`
	AmountCents int        `gorm:"not null"` // integer cents, > 0
	OccurredAt  time.Time  `gorm:"index;not null"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	Notes       string

	Category *CashCategory `gorm:"foreignKey:CategoryID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *CashTransaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
