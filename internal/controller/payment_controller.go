package controller

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dailymeet_backend/internal/model"
	"dailymeet_backend/pkg/database"
	"dailymeet_backend/pkg/email"
	"dailymeet_backend/pkg/events"
	"dailymeet_backend/pkg/payment"
	"dailymeet_backend/pkg/subscription"
)

var (
	paymentClient        *payment.Client
	paymentCurrency      = "INR"
	paymentWebhookSecret string
)

func InitPaymentController(client *payment.Client, currency, webhookSecret string) {
	paymentClient = client
	if currency != "" {
		paymentCurrency = currency
	}
	paymentWebhookSecret = webhookSecret
}

type PaymentOrderInput struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone"`
	PlanType     string  `json:"plan_type" validate:"required"`
	Price        float64 `json:"price" validate:"required,min=1"`
	DurationDays int     `json:"duration_days" validate:"required,min=1"`
	StartDate    string  `json:"start_date"`
}

type PaymentVerifyInput struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

// CreatePaymentOrder ödeme siparişi açar ve beklemede bir abonelik kaydeder.
// Kullanıcı yoksa e-postasıyla oluşturulur; istenen pencereyle çakışan
// mevcut bir abonelik varsa sipariş reddedilir.
func CreatePaymentOrder(c *fiber.Ctx) error {
	if paymentClient == nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Payment gateway is not configured",
		})
	}

	input := new(PaymentOrderInput)
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

	db := database.GetDB()

	var user model.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		user = model.User{
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			JoinedVia: "checkout",
		}
		if err := db.Create(&user).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not create user",
			})
		}
	}

	overlapping, err := subscription.HasOverlappingSubscription(db, user.ID, startDate, endDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not check existing subscriptions",
		})
	}
	if overlapping {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "An active or pending subscription already covers this period",
		})
	}

	receipt := uuid.NewString()
	order, err := paymentClient.CreateOrder(payment.AmountInSubunits(input.Price), paymentCurrency, receipt)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not create payment order",
		})
	}

	orderID, _ := order["id"].(string)
	sub := model.Subscription{
		UserID:        user.ID,
		PlanType:      input.PlanType,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        model.SubStatusPending,
		PaymentStatus: model.PaymentPending,
		Price:         input.Price,
		DurationDays:  input.DurationDays,
		OrderID:       orderID,
	}
	if err := db.Create(&sub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save subscription",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id": orderID,
		"amount":   order["amount"],
		"currency": paymentCurrency,
		"key_id":   paymentClient.KeyID(),
	})
}

// VerifyPayment checkout imzasını doğrular ve aboneliği aktive eder.
// Toplantıya ekleme ve davet e-postası en-iyi-çaba olarak yürütülür.
func VerifyPayment(c *fiber.Ctx) error {
	if paymentClient == nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Payment gateway is not configured",
		})
	}

	input := new(PaymentVerifyInput)
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

	if !paymentClient.VerifyCheckoutSignature(input.OrderID, input.PaymentID, input.Signature) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid payment signature",
		})
	}

	var sub model.Subscription
	if err := database.GetDB().Preload("User").
		Where("order_id = ?", input.OrderID).
		First(&sub).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription not found for order",
		})
	}

	sub.Status = model.SubStatusActive
	sub.PaymentStatus = model.PaymentCompleted
	if err := database.GetDB().Save(&sub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not activate subscription",
		})
	}

	attachToTodaysMeeting(c, sub.User)

	if email.GlobalEmailService != nil {
		err := email.GlobalEmailService.SendSubscriptionStartedEmail(
			sub.User.Email,
			sub.User.DisplayName(),
			sub.PlanType,
			sub.Price,
			paymentCurrency,
			sub.DurationDays,
			sub.StartDate,
			sub.EndDate,
		)
		if err != nil {
			log.Printf("Could not send subscription email: %v", err)
		}
	}

	events.Publish(events.SubscriptionActivated, map[string]interface{}{
		"subscription_id": sub.ID,
		"user_id":         sub.UserID,
	})

	return c.JSON(fiber.Map{
		"message":      "Payment verified",
		"subscription": sub,
	})
}

// HandlePaymentWebhook gövde imzasını doğrular, olayı loglayıp onaylar.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	if paymentClient == nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Payment gateway is not configured",
		})
	}

	signature := c.Get("X-Razorpay-Signature")
	if !paymentClient.VerifyWebhookSignature(c.Body(), signature, paymentWebhookSecret) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	var event struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	log.Printf("Received payment webhook event: %s", event.Event)
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
