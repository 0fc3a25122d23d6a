package services

import (
	"errors"
	"testing"

	"github.com/midtrans/midtrans-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

func TestMapGatewayStatus(t *testing.T) {
	assert.Equal(t, models.PaymentPaid, MapGatewayStatus("settlement"))
	assert.Equal(t, models.PaymentPaid, MapGatewayStatus("capture"))
	assert.Equal(t, models.PaymentFailed, MapGatewayStatus("expire"))
	assert.Equal(t, models.PaymentFailed, MapGatewayStatus("cancel"))
	assert.Equal(t, models.PaymentFailed, MapGatewayStatus("deny"))
	assert.Equal(t, models.PaymentUnpaid, MapGatewayStatus("pending"))
	assert.Equal(t, models.PaymentUnpaid, MapGatewayStatus(""))
}

func TestClassifyMidtransError(t *testing.T) {
	t.Run("error dengan status http", func(t *testing.T) {
		raw := errors.New("charge rejected")
		apiErr := classifyMidtransError(&midtrans.Error{
			StatusCode: 402,
			Message:    "Pembayaran ditolak gateway",
			RawError:   raw,
		})

		require.NotNil(t, apiErr)
		assert.Equal(t, utils.KindHTTPStatus, apiErr.Kind)
		assert.Equal(t, 402, apiErr.StatusCode)
		assert.Equal(t, "Pembayaran ditolak gateway", apiErr.UserMessage())
		assert.ErrorIs(t, apiErr, raw)
	})

	t.Run("error jaringan tanpa status", func(t *testing.T) {
		apiErr := classifyMidtransError(&midtrans.Error{
			RawError: errors.New("dial tcp: connection refused"),
		})

		require.NotNil(t, apiErr)
		assert.Equal(t, utils.KindNetworkFailure, apiErr.Kind)
	})

	t.Run("nil tetap nil", func(t *testing.T) {
		assert.Nil(t, classifyMidtransError(nil))
	})
}

func TestGatewayWithoutServerKey(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "")
	gw := NewPaymentGateway()

	_, err := gw.CreateQRISCharge("ORD-20250101-000001", 46000)

	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, utils.KindConfigMissing, apiErr.Kind)

	_, err = gw.CheckStatus("ORD-20250101-000001")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, utils.KindConfigMissing, apiErr.Kind)
}
