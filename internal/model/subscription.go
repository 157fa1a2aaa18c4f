package model

import (
	"time"

	"gorm.io/gorm"
)

// Subscription durumları
const (
	SubStatusPending   = "pending"
	SubStatusActive    = "active"
	SubStatusInactive  = "inactive"
	SubStatusExpired   = "expired"
	SubStatusCancelled = "cancelled"
)

// Ödeme durumları
const (
	PaymentPending   = "pending"
	PaymentInitiated = "initiated"
	PaymentCompleted = "completed"
	PaymentPaid      = "paid"
	PaymentSuccess   = "success"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"

	// Admin tarafından eklenen abonelikler için rezerve durumlar
	PaymentAdminAdded   = "admin-added"
	PaymentAdminCreated = "admin-created"
)

type Subscription struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	PlanType      string    `json:"plan_type" gorm:"not null"`
	StartDate     time.Time `json:"start_date" gorm:"not null;index"`
	EndDate       time.Time `json:"end_date" gorm:"not null"`
	Status        string    `json:"status" gorm:"default:'pending'"`
	PaymentStatus string    `json:"payment_status" gorm:"default:'pending';index"`
	Price         float64   `json:"price"`
	DurationDays  int       `json:"duration_days"`
	OrderID       string    `json:"order_id" gorm:"index"`

	// İlişkiler
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
