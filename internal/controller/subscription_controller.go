package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"dailymeet_backend/internal/model"
	"dailymeet_backend/pkg/database"
	"dailymeet_backend/pkg/email"
	"dailymeet_backend/pkg/events"
	"dailymeet_backend/pkg/meeting"
	"dailymeet_backend/pkg/subscription"
)

const dateFormat = "2006-01-02"

// Sınırsız erişim için kullanılan uzak bitiş tarihi.
var farFutureEnd = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)

var errInvalidRange = errors.New("end date is before start date")

type AdminSubscriptionInput struct {
	UserID       uint    `json:"user_id" validate:"required"`
	PlanType     string  `json:"plan_type" validate:"required"`
	DurationDays int     `json:"duration_days" validate:"min=0"`
	Price        float64 `json:"price" validate:"min=0"`
	StartDate    string  `json:"start_date"`
	Unlimited    bool    `json:"unlimited"`
}

// ListSubscriptions tarih penceresi ve ödeme filtresiyle abonelikleri döner.
func ListSubscriptions(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": map[string]string{"start": err.Error()},
		})
	}

	filter, err := subscription.ParsePaymentFilter(c.Query("payment"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": map[string]string{"payment": "must be one of: all, paid, pending"},
		})
	}

	subs, err := subscription.SelectSubscriptions(database.GetDB(), start, end, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch subscriptions",
		})
	}

	return c.JSON(fiber.Map{
		"subscriptions": subs,
		"count":         len(subs),
	})
}

// CreateAdminSubscription admin tarafından doğrudan aktif abonelik açar.
// Ödeme durumu rezerve "admin-added" değeriyle işaretlenir; sınırsız
// erişim uzak bir bitiş tarihiyle temsil edilir.
func CreateAdminSubscription(c *fiber.Ctx) error {
	input := new(AdminSubscriptionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fieldErrors(err),
		})
	}

	var user model.User
	if err := database.GetDB().First(&user, input.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	startDate := startOfToday()
	if input.StartDate != "" {
		parsed, err := time.Parse(dateFormat, input.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": map[string]string{"start_date": "must be formatted as YYYY-MM-DD"},
			})
		}
		startDate = parsed
	}

	endDate := startDate.AddDate(0, 0, input.DurationDays)
	durationDays := input.DurationDays
	if input.Unlimited {
		endDate = farFutureEnd
		durationDays = int(farFutureEnd.Sub(startDate).Hours() / 24)
	}
	if endDate.Before(startDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": map[string]string{"duration_days": "end date would precede start date"},
		})
	}

	sub := model.Subscription{
		UserID:        user.ID,
		PlanType:      input.PlanType,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        model.SubStatusActive,
		PaymentStatus: model.PaymentAdminAdded,
		Price:         input.Price,
		DurationDays:  durationDays,
	}

	if err := database.GetDB().Create(&sub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create subscription",
		})
	}

	attachToTodaysMeeting(c, user)
	events.Publish(events.SubscriptionCreated, map[string]interface{}{
		"subscription_id": sub.ID,
		"user_id":         user.ID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Subscription created successfully",
		"subscription": sub,
	})
}

func DeleteSubscription(c *fiber.Ctx) error {
	var sub model.Subscription
	if err := database.GetDB().Preload("User").First(&sub, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription not found",
		})
	}

	if err := database.GetDB().Delete(&sub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete subscription",
		})
	}

	if email.GlobalEmailService != nil && sub.User.Email != "" {
		err := email.GlobalEmailService.SendSubscriptionCancelledEmail(
			sub.User.Email,
			sub.User.DisplayName(),
			sub.PlanType,
			sub.EndDate,
		)
		if err != nil {
			log.Printf("Could not send cancellation email: %v", err)
		}
	}

	events.Publish(events.SubscriptionDeleted, map[string]interface{}{
		"subscription_id": sub.ID,
		"user_id":         sub.UserID,
	})

	return c.JSON(fiber.Map{
		"message": "Subscription deleted successfully",
	})
}

// attachToTodaysMeeting yeni aboneyi bugünün toplantısına ekler ve davet
// e-postası gönderir. Takvim ya da e-posta hatası üst işlemi bozmaz.
func attachToTodaysMeeting(c *fiber.Ctx, user model.User) {
	opts := defaultMeetingOptions
	opts.UserIDs = []uint{user.ID}

	m, _, err := meeting.GetOrCreate(c.Context(), database.GetDB(), calendarProvider, startOfToday(), opts)
	if err != nil {
		log.Printf("Could not attach user %d to today's meeting: %v", user.ID, err)
		return
	}

	if email.GlobalEmailService != nil && user.Email != "" {
		err := email.GlobalEmailService.SendMeetingInvite(
			user.Email,
			user.DisplayName(),
			m.Title,
			m.Description,
			m.Link,
			"",
			m.Platform,
			m.StartTime,
			m.EndTime,
		)
		if err != nil {
			log.Printf("Could not send meeting invite to %s: %v", user.Email, err)
		}
	}
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// parseDateRange start/end query parametrelerini ayrıştırır. İkisi de
// boşsa içinde bulunulan ay kullanılır; sadece start verilirse tek gün.
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" && endStr == "" {
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, -1), nil
	}

	start, err := time.Parse(dateFormat, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end := start
	if endStr != "" {
		end, err = time.Parse(dateFormat, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errInvalidRange
	}
	return start, end, nil
}
