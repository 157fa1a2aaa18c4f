package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"dailymeet_backend/internal/controller"
	"dailymeet_backend/internal/model"
	"dailymeet_backend/pkg/database"
	"dailymeet_backend/pkg/utils/storage"
)

// InitExportArchiveCron her gece kullanıcı/abonelik dışa aktarımını
// S3 bucket'ına arşivler.
func InitExportArchiveCron() {
	c := cron.New()

	_, err := c.AddFunc("0 1 * * *", func() {
		archiveUsersExport()
	})

	if err != nil {
		log.Printf("Could not initialize export archive cron: %v", err)
		return
	}

	c.Start()
}

func archiveUsersExport() {
	log.Println("Archiving nightly users export...")

	var users []model.User
	if err := database.GetDB().
		Preload("Subscriptions").
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		log.Printf("Could not fetch users for archive: %v", err)
		return
	}

	data, err := controller.BuildUsersCSV(users)
	if err != nil {
		log.Printf("Could not build archive CSV: %v", err)
		return
	}

	key := fmt.Sprintf("exports/users-%s.csv", time.Now().Format("2006-01-02"))
	url, err := storage.UploadCSV(key, data)
	if err != nil {
		log.Printf("Could not upload archive: %v", err)
		return
	}

	log.Printf("Archived %d users to %s", len(users), url)
}
