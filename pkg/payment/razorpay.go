package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/razorpay/razorpay-go"
)

var ErrOrderCreationFailed = errors.New("failed to create payment order")

// AmountInSubunits fiyatı en küçük para birimine çevirir (INR için paise).
// Kayan nokta hatası kesme değil yuvarlama ile giderilir.
func AmountInSubunits(price float64) int {
	return int(math.Round(price * 100))
}

type Client struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewClient(keyID, keySecret string) *Client {
	if keyID == "" || keySecret == "" {
		log.Println("WARNING: Razorpay credentials are not fully configured")
	}
	return &Client{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder verilen tutar için bir ödeme siparişi açar. Tutar en küçük
// para birimi cinsindendir (INR için paise).
func (c *Client) CreateOrder(amount int, currency, receiptID string) (map[string]interface{}, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receiptID,
	}

	order, err := c.client.Order.Create(data, nil)
	if err != nil {
		log.Printf("Failed to create Razorpay order: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	log.Printf("Created Razorpay order %v for receipt %s", order["id"], receiptID)
	return order, nil
}

// VerifyCheckoutSignature checkout dönüşünde gelen imzayı doğrular:
// HMAC-SHA256(orderID + "|" + paymentID, keySecret).
func (c *Client) VerifyCheckoutSignature(orderID, paymentID, signature string) bool {
	if c.keySecret == "" {
		log.Println("Warning: checkout signature verification skipped (no key secret)")
		return true
	}

	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature webhook gövdesinin imzasını doğrular.
func (c *Client) VerifyWebhookSignature(body []byte, signature, webhookSecret string) bool {
	if webhookSecret == "" {
		log.Println("Warning: webhook signature verification skipped (no webhook secret)")
		return true
	}

	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
