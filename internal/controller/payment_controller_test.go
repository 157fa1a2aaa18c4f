package controller

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailymeet_backend/pkg/payment"
)

func TestHandlePaymentWebhookVerifiesSignature(t *testing.T) {
	InitPaymentController(payment.NewClient("key_id", "key_secret"), "INR", "whsec")

	app := fiber.New()
	app.Post("/api/payments/webhook", HandlePaymentWebhook)

	body := []byte(`{"event":"payment.captured"}`)
	mac := hmac.New(sha256.New, []byte("whsec"))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	req := httptest.NewRequest("POST", "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("X-Razorpay-Signature", valid)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	req = httptest.NewRequest("POST", "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("X-Razorpay-Signature", "tampered")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}
