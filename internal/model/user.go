package model

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name  string `json:"name" gorm:"not null"`
	Email string `json:"email" gorm:"uniqueIndex;not null"`
	Phone string `json:"phone"`

	// Opsiyonel profil bilgileri
	City      string `json:"city"`
	JoinedVia string `json:"joined_via"`
	Notes     string `json:"notes"`

	// İlişkiler
	Subscriptions []Subscription `json:"subscriptions,omitempty"`
	Meetings      []Meeting      `json:"-" gorm:"many2many:meeting_users;"`
}

func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Email
}
