package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PAYMENT_CURRENCY", "")
	t.Setenv("RECEIPT_PREFIX", "")
	t.Setenv("LEDGER_MAX_RETRIES", "")

	s := Load()

	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, "INR", s.Currency)
	assert.Equal(t, "TPS", s.ReceiptPrefix)
	assert.Equal(t, 3, s.LedgerMaxRetries)
	assert.Equal(t, "https://api.razorpay.com/v1", s.RazorpayBaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RECEIPT_PREFIX", "ABC")
	t.Setenv("LEDGER_MAX_RETRIES", "5")
	t.Setenv("LOG_PRETTY", "true")

	s := Load()

	assert.Equal(t, "9090", s.Port)
	assert.Equal(t, "ABC", s.ReceiptPrefix)
	assert.Equal(t, 5, s.LedgerMaxRetries)
	assert.True(t, s.LogPretty)
}

func TestLoadRejectsBadRetryCount(t *testing.T) {
	t.Setenv("LEDGER_MAX_RETRIES", "zero")
	assert.Equal(t, 3, Load().LedgerMaxRetries)

	t.Setenv("LEDGER_MAX_RETRIES", "0")
	assert.Equal(t, 3, Load().LedgerMaxRetries)
}
