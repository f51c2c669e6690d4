package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	sig := sign("order_abc", "pay_xyz", testKeySecret)

	assert.True(t, VerifySignature("order_abc", "pay_xyz", sig, testKeySecret))
	assert.False(t, VerifySignature("order_abc", "pay_other", sig, testKeySecret))
	assert.False(t, VerifySignature("order_other", "pay_xyz", sig, testKeySecret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", sig, "wrong_secret"))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", "", testKeySecret))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	sig := signBody(body, testWebhookSecret)

	assert.True(t, VerifyWebhookSignature(body, sig, testWebhookSecret))
	assert.False(t, VerifyWebhookSignature([]byte(`{"event":"tampered"}`), sig, testWebhookSecret))
	assert.False(t, VerifyWebhookSignature(body, sig, "wrong_secret"))
}
