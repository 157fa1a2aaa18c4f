package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"dailymeet_backend/internal/model"
	"dailymeet_backend/pkg/database"
	"dailymeet_backend/pkg/email"
	"dailymeet_backend/pkg/meeting"
	"dailymeet_backend/pkg/subscription"
)

// InitMeetingSyncCron her sabah günün toplantısını garanti eder ve o gün
// erişimi olan aboneleri toplantıya ekleyip davet e-postası gönderir.
func InitMeetingSyncCron(provider meeting.EventProvider, opts meeting.Options) {
	c := cron.New()

	_, err := c.AddFunc("0 6 * * *", func() {
		ensureTodaysMeeting(provider, opts)
	})

	if err != nil {
		log.Printf("Could not initialize meeting sync cron: %v", err)
		return
	}

	c.Start()
}

func ensureTodaysMeeting(provider meeting.EventProvider, opts meeting.Options) {
	log.Println("Ensuring today's meeting exists...")

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	opts.CreatedBy = model.CreatedByCron

	m, created, err := meeting.GetOrCreate(ctx, database.GetDB(), provider, today, opts)
	if err != nil {
		log.Printf("Could not ensure today's meeting: %v", err)
		return
	}
	if created {
		log.Printf("Created meeting %d for %s", m.ID, today.Format("2006-01-02"))
	}

	subs, err := subscription.SelectSubscriptions(database.GetDB(), today, today, subscription.FilterPaid)
	if err != nil {
		log.Printf("Could not fetch today's subscribers: %v", err)
		return
	}

	invited := 0
	for _, sub := range subs {
		if err := meeting.AttachUser(database.GetDB(), m.ID, sub.UserID); err != nil {
			log.Printf("Could not attach user %d to meeting %d: %v", sub.UserID, m.ID, err)
			continue
		}

		if email.GlobalEmailService != nil && sub.User.Email != "" {
			err := email.GlobalEmailService.SendMeetingInvite(
				sub.User.Email,
				sub.User.DisplayName(),
				m.Title,
				m.Description,
				m.Link,
				"",
				m.Platform,
				m.StartTime,
				m.EndTime,
			)
			if err != nil {
				log.Printf("Could not send invite to %s: %v", sub.User.Email, err)
				continue
			}
		}
		invited++
	}

	log.Printf("Meeting sync done: %d subscribers invited for %s", invited, today.Format("2006-01-02"))
}
