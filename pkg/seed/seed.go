package seed

import (
	"log"
	"time"

	"gorm.io/gorm"

	"dailymeet_backend/internal/model"
)

// SeedDemoData geliştirme ortamı için örnek kullanıcı ve abonelikler
// oluşturur. Kayıtlar e-posta üzerinden idempotenttir.
func SeedDemoData(db *gorm.DB) {
	today := time.Now().Truncate(24 * time.Hour)

	users := []model.User{
		{Name: "Asha Verma", Email: "asha@example.com", Phone: "+911234500001", JoinedVia: "checkout"},
		{Name: "Rohan Iyer", Email: "rohan@example.com", Phone: "+911234500002", JoinedVia: "checkout"},
		{Name: "Meera Pillai", Email: "meera@example.com", Phone: "+911234500003", JoinedVia: "admin"},
	}

	for i := range users {
		result := db.FirstOrCreate(&users[i], model.User{Email: users[i].Email})
		if result.Error != nil {
			log.Printf("Error seeding user %s: %v", users[i].Email, result.Error)
		}
	}

	subs := []model.Subscription{
		{
			UserID:        users[0].ID,
			PlanType:      "monthly",
			StartDate:     today.AddDate(0, 0, -10),
			EndDate:       today.AddDate(0, 0, 20),
			Status:        model.SubStatusActive,
			PaymentStatus: model.PaymentCompleted,
			Price:         2499,
			DurationDays:  30,
			OrderID:       "order_demo_monthly",
		},
		{
			UserID:        users[1].ID,
			PlanType:      "family-monthly",
			StartDate:     today.AddDate(0, 0, -5),
			EndDate:       today.AddDate(0, 0, 25),
			Status:        model.SubStatusActive,
			PaymentStatus: model.PaymentCompleted,
			Price:         4499,
			DurationDays:  30,
			OrderID:       "order_demo_family",
		},
		{
			UserID:        users[2].ID,
			PlanType:      "unlimited",
			StartDate:     today,
			EndDate:       time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC),
			Status:        model.SubStatusActive,
			PaymentStatus: model.PaymentAdminAdded,
			Price:         0,
			DurationDays:  0,
		},
	}

	for _, sub := range subs {
		result := db.FirstOrCreate(&sub, model.Subscription{UserID: sub.UserID, PlanType: sub.PlanType})
		if result.Error != nil {
			log.Printf("Error seeding subscription for user %d: %v", sub.UserID, result.Error)
		}
	}

	log.Println("Demo data seeded successfully!")
}
