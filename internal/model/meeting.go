package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Toplantı platformları
const (
	PlatformGoogleMeet = "google-meet"
	PlatformZoom       = "zoom"
)

// Toplantıyı kimin oluşturduğu
const (
	CreatedByAdmin        = "admin"
	CreatedByCron         = "cron"
	CreatedByCalendarSync = "calendar-sync"
)

// Meeting bir takvim günü için planlanan video oturumunu temsil eder.
// Normal akışta gün başına tek kayıt bulunur; uniqueIndex bunu
// veritabanı seviyesinde de garanti eder.
type Meeting struct {
	gorm.Model
	Date        datatypes.Date `json:"date" gorm:"uniqueIndex;not null"`
	ExternalID  string         `json:"external_id"`
	Link        string         `json:"link"`
	Platform    string         `json:"platform" gorm:"default:'google-meet'"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CreatedBy   string         `json:"created_by" gorm:"default:'admin'"`
	IsDefault   bool           `json:"is_default" gorm:"default:false"`

	// İlişkiler
	Users []User `json:"users,omitempty" gorm:"many2many:meeting_users;"`
}
