package services

import (
	"os"
	"sync"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

// QRISCharge adalah hasil pembuatan tagihan QRIS di gateway.
type QRISCharge struct {
	OrderCode   string `json:"order_code"`
	QRString    string `json:"qr_string"`
	ReferenceID string `json:"reference_id"`
}

// PaymentGateway membungkus Midtrans untuk metode qris. Semua kegagalan
// dikembalikan sebagai *utils.APIError dengan kind eksplisit supaya UI tidak
// perlu menebak dari isi pesan.
type PaymentGateway struct {
	mu     sync.Mutex
	client coreapi.Client
	ready  bool
}

func NewPaymentGateway() *PaymentGateway {
	gw := &PaymentGateway{}

	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		// Gateway tetap dibuat supaya error-nya muncul saat dipakai,
		// sebagai ConfigMissing yang jelas, bukan nil pointer.
		return gw
	}

	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_ENV") == "production" {
		env = midtrans.Production
	}

	gw.client.New(serverKey, env)
	gw.ready = true
	return gw
}

// CreateQRISCharge membuat tagihan QRIS untuk satu order.
func (gw *PaymentGateway) CreateQRISCharge(orderCode string, amount float64) (*QRISCharge, error) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if !gw.ready {
		return nil, utils.NewConfigMissingError("MIDTRANS_SERVER_KEY belum diset")
	}

	req := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeQris,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderCode,
			GrossAmt: int64(amount),
		},
	}

	resp, err := gw.client.ChargeTransaction(req)
	if err != nil {
		return nil, classifyMidtransError(err)
	}

	return &QRISCharge{
		OrderCode:   orderCode,
		QRString:    resp.QRString,
		ReferenceID: resp.TransactionID,
	}, nil
}

// CheckStatus menanyakan status transaksi ke gateway dan memetakannya ke
// payment_status internal.
func (gw *PaymentGateway) CheckStatus(orderCode string) (string, error) {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if !gw.ready {
		return "", utils.NewConfigMissingError("MIDTRANS_SERVER_KEY belum diset")
	}

	resp, err := gw.client.CheckTransaction(orderCode)
	if err != nil {
		return "", classifyMidtransError(err)
	}

	return MapGatewayStatus(resp.TransactionStatus), nil
}

// MapGatewayStatus memetakan status transaksi Midtrans ke payment_status.
func MapGatewayStatus(gatewayStatus string) string {
	switch gatewayStatus {
	case "settlement", "capture":
		return models.PaymentPaid
	case "expire", "cancel", "deny":
		return models.PaymentFailed
	default:
		return models.PaymentUnpaid
	}
}

func classifyMidtransError(err *midtrans.Error) *utils.APIError {
	if err == nil {
		return nil
	}
	if err.StatusCode != 0 {
		return utils.NewHTTPStatusError(err.StatusCode, err.Message, err.RawError)
	}
	return utils.NewNetworkError(err.RawError)
}
