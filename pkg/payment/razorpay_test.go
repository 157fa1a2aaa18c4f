package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInSubunits(t *testing.T) {
	// Kayan nokta gösterimi yüzünden kesme bir paise eksik tahsil eder,
	// yuvarlama etmez.
	tests := []struct {
		price float64
		want  int
	}{
		{19.99, 1999},
		{4.35, 435},
		{8.2, 820},
		{2499, 249900},
		{0.01, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AmountInSubunits(tt.price), "price %v", tt.price)
	}
}

func signPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyCheckoutSignature(t *testing.T) {
	c := NewClient("key_id", "key_secret")

	valid := signPayload("key_secret", []byte("order_123|pay_456"))

	assert.True(t, c.VerifyCheckoutSignature("order_123", "pay_456", valid))
	assert.False(t, c.VerifyCheckoutSignature("order_123", "pay_456", "tampered"))
	assert.False(t, c.VerifyCheckoutSignature("order_999", "pay_456", valid))
}

func TestVerifyWebhookSignature(t *testing.T) {
	c := NewClient("key_id", "key_secret")
	body := []byte(`{"event":"payment.captured"}`)

	valid := signPayload("whsec", body)

	assert.True(t, c.VerifyWebhookSignature(body, valid, "whsec"))
	assert.False(t, c.VerifyWebhookSignature(body, "tampered", "whsec"))
	assert.False(t, c.VerifyWebhookSignature([]byte(`{}`), valid, "whsec"))
}
