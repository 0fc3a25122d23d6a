package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrencyIDR(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatCurrencyIDR(0))
	assert.Equal(t, "Rp 500", FormatCurrencyIDR(500))
	assert.Equal(t, "Rp 15.000", FormatCurrencyIDR(15000))
	assert.Equal(t, "Rp 86.000", FormatCurrencyIDR(86000))
	assert.Equal(t, "Rp 1.250.000", FormatCurrencyIDR(1250000))
	assert.Equal(t, "Rp 15.000,50", FormatCurrencyIDR(15000.50))
	assert.Equal(t, "Rp 1.000.005", FormatCurrencyIDR(1000005))
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, 7, "cashier")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, uint(7), claims.TenantID)
	assert.Equal(t, "cashier", claims.Role)
	assert.Equal(t, "QrOrderApp", claims.Issuer)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("bukan.token.valid")
	assert.Error(t, err)
}

func TestAPIErrorKinds(t *testing.T) {
	t.Run("config missing", func(t *testing.T) {
		err := NewConfigMissingError("MIDTRANS_SERVER_KEY belum diset")
		assert.Equal(t, KindConfigMissing, err.Kind)
		assert.Contains(t, err.Error(), "config missing")
		assert.Contains(t, err.UserMessage(), "Konfigurasi")
	})

	t.Run("http status", func(t *testing.T) {
		raw := errors.New("bad gateway")
		err := NewHTTPStatusError(502, "", raw)
		assert.Equal(t, KindHTTPStatus, err.Kind)
		assert.Equal(t, "Bad Gateway", err.UserMessage())
		assert.ErrorIs(t, err, raw)

		withMsg := NewHTTPStatusError(402, "Pembayaran ditolak", nil)
		assert.Equal(t, "Pembayaran ditolak", withMsg.UserMessage())
	})

	t.Run("network failure", func(t *testing.T) {
		raw := errors.New("connection refused")
		err := NewNetworkError(raw)
		assert.Equal(t, KindNetworkFailure, err.Kind)
		assert.Contains(t, err.UserMessage(), "jaringan")
		assert.ErrorIs(t, err, raw)
	})

	t.Run("timeout", func(t *testing.T) {
		err := NewTimeoutError("printer tidak merespon")
		assert.Equal(t, KindTimeout, err.Kind)
		assert.Contains(t, err.UserMessage(), "coba lagi")
	})
}
