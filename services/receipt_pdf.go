package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

// Lebar kertas thermal 80mm dengan margin 4mm kiri-kanan.
const (
	receiptWidth  = 80.0
	receiptMargin = 4.0
)

// BuildReceiptPDF merender struk order ke PDF layout thermal 80mm.
// Info WiFi ikut dicetak bila tenant mengisinya (langkah opsional yang boleh
// dilewati).
func BuildReceiptPDF(order *models.Order, tenant *models.Tenant) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: receiptWidth, Ht: 297},
	})
	pdf.SetMargins(receiptMargin, receiptMargin, receiptMargin)
	pdf.SetAutoPageBreak(true, receiptMargin)
	pdf.AddPage()

	line := func(txt string, size float64, bold bool, align string) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Courier", style, size)
		pdf.CellFormat(receiptWidth-2*receiptMargin, size*0.5, txt, "", 1, align, false, 0, "")
	}
	divider := func() {
		line(strings.Repeat("-", 32), 8, false, "C")
	}

	// Header tenant
	line(tenant.Name, 11, true, "C")
	if tenant.Address != "" {
		line(tenant.Address, 7, false, "C")
	}
	if tenant.Phone != "" {
		line(tenant.Phone, 7, false, "C")
	}
	divider()

	line(fmt.Sprintf("Order  : %s", order.OrderCode), 8, false, "L")
	line(fmt.Sprintf("Meja   : %s", order.Table.TableNumber), 8, false, "L")
	line(fmt.Sprintf("Nama   : %s", order.CustomerName), 8, false, "L")
	line(fmt.Sprintf("Waktu  : %s", order.CreatedAt.Format("02/01/2006 15:04")), 8, false, "L")
	divider()

	for _, item := range order.OrderItems {
		line(fmt.Sprintf("%dx %s", item.Quantity, item.MenuName), 8, false, "L")
		for _, opt := range item.Options {
			label := fmt.Sprintf("   + %s", opt.Label)
			if opt.ExtraPrice > 0 {
				label += fmt.Sprintf(" (%s)", utils.FormatCurrencyIDR(opt.ExtraPrice))
			}
			line(label, 7, false, "L")
		}
		if item.Notes != "" {
			line(fmt.Sprintf("   catatan: %s", item.Notes), 7, false, "L")
		}
		line(utils.FormatCurrencyIDR(item.Subtotal), 8, false, "R")
	}
	divider()

	line(fmt.Sprintf("TOTAL %s", utils.FormatCurrencyIDR(order.TotalAmount)), 10, true, "R")
	line(fmt.Sprintf("Metode : %s", order.PaymentMethod), 8, false, "L")
	line(fmt.Sprintf("Status : %s", order.PaymentStatus), 8, false, "L")

	if tenant.WifiSSID != "" {
		divider()
		line(fmt.Sprintf("WiFi     : %s", tenant.WifiSSID), 8, false, "L")
		if tenant.WifiPassword != "" {
			line(fmt.Sprintf("Password : %s", tenant.WifiPassword), 8, false, "L")
		}
	}

	divider()
	line("Terima kasih atas kunjungan Anda!", 8, false, "C")
	line(time.Now().Format("02/01/2006 15:04:05"), 7, false, "C")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
