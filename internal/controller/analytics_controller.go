package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"dailymeet_backend/pkg/database"
	"dailymeet_backend/pkg/subscription"
)

// GetAnalytics istenen tarih aralığı için gelir ve abonelik özetini döner.
// Özet her istekte yeniden hesaplanır, hiçbir yerde saklanmaz.
func GetAnalytics(c *fiber.Ctx) error {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": map[string]string{"start": err.Error()},
		})
	}

	subs, err := subscription.SelectSubscriptions(database.GetDB(), start, end, subscription.FilterAll)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch subscriptions",
		})
	}

	summary := subscription.Aggregate(subs, start, end, time.Now())

	return c.JSON(fiber.Map{
		"range": fiber.Map{
			"start": start.Format(dateFormat),
			"end":   end.Format(dateFormat),
		},
		"summary": summary,
	})
}
