package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandukusuma/qr-order-app/models"
)

func TestBuildReceiptPDF(t *testing.T) {
	order := &models.Order{
		OrderCode:    "ORD-20250101-000001",
		CustomerName: "Budi",
		Table:        models.Table{TableNumber: "5"},
		OrderItems: []models.OrderItem{
			{
				MenuName: "Nasi Goreng Spesial", Price: 38000, Quantity: 2, Subtotal: 86000,
				Options: []models.OrderItemOption{{Label: "Large", ExtraPrice: 5000}},
				Notes:   "pedas",
			},
		},
		TotalAmount:   86000,
		PaymentMethod: models.MethodCash,
		PaymentStatus: models.PaymentPaid,
		CreatedAt:     time.Now(),
	}
	tenant := &models.Tenant{
		Name: "Kopi Uenak", Address: "Jl. Melati 5", Phone: "0812000000",
		WifiSSID: "KopiUenak", WifiPassword: "rahasia",
	}

	doc, err := BuildReceiptPDF(order, tenant)
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestBuildReceiptPDFWithoutWifi(t *testing.T) {
	order := &models.Order{
		OrderCode:  "ORD-20250101-000002",
		OrderItems: []models.OrderItem{{MenuName: "Americano", Quantity: 1, Subtotal: 15000}},
		CreatedAt:  time.Now(),
	}

	doc, err := BuildReceiptPDF(order, &models.Tenant{Name: "Warung"})
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}
