package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"dailymeet_backend/internal/model"
	"dailymeet_backend/pkg/database"
)

// ListUsers tüm kullanıcıları abonelikleriyle birlikte döner.
func ListUsers(c *fiber.Ctx) error {
	var users []model.User
	if err := database.GetDB().
		Preload("Subscriptions").
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

func GetUser(c *fiber.Ctx) error {
	var user model.User
	if err := database.GetDB().
		Preload("Subscriptions").
		Preload("Meetings").
		First(&user, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(user)
}

// ExportUsersCSV kullanıcı ve abonelik alanlarını düz bir CSV dosyası
// olarak indirir.
func ExportUsersCSV(c *fiber.Ctx) error {
	var users []model.User
	if err := database.GetDB().
		Preload("Subscriptions").
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch users",
		})
	}

	data, err := BuildUsersCSV(users)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not build CSV",
		})
	}

	filename := fmt.Sprintf("users-%s.csv", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

// BuildUsersCSV başlık satırı olan, kullanıcı başına bir satırlık CSV üretir.
func BuildUsersCSV(users []model.User) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"id", "name", "email", "phone", "joined_at",
		"plan_type", "subscription_status", "payment_status",
		"start_date", "end_date", "price",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, u := range users {
		row := []string{
			fmt.Sprintf("%d", u.ID),
			u.Name,
			u.Email,
			u.Phone,
			u.CreatedAt.Format("2006-01-02"),
			"", "", "", "", "", "",
		}
		// Son abonelik varsa satıra yazılır.
		if len(u.Subscriptions) > 0 {
			latest := u.Subscriptions[0]
			for _, s := range u.Subscriptions[1:] {
				if s.StartDate.After(latest.StartDate) {
					latest = s
				}
			}
			row[5] = latest.PlanType
			row[6] = latest.Status
			row[7] = latest.PaymentStatus
			row[8] = latest.StartDate.Format("2006-01-02")
			row[9] = latest.EndDate.Format("2006-01-02")
			row[10] = fmt.Sprintf("%.2f", latest.Price)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
