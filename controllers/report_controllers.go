package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// reportRange membaca ?start=YYYY-MM-DD&end=YYYY-MM-DD, default 7 hari terakhir.
func reportRange(c *gin.Context) (time.Time, time.Time) {
	end := time.Now()
	start := end.AddDate(0, 0, -7)

	if v := c.Query("start"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			start = t
		}
	}
	if v := c.Query("end"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			// inklusif sampai akhir hari
			end = t.AddDate(0, 0, 1).Add(-time.Second)
		}
	}
	return start, end
}

// SalesSummary -> rekap omzet, jumlah order, dan menu terlaris
func (rc *ReportController) SalesSummary(c *gin.Context) {
	tenantID := tenantIDFromContext(c)
	start, end := reportRange(c)

	base := rc.DB.Model(&models.Order{}).
		Where("tenant_id = ? AND created_at BETWEEN ? AND ?", tenantID, start, end).
		Where("order_status = ? AND payment_status = ?", models.OrderCompleted, models.PaymentPaid)

	var totalRevenue float64
	var orderCount int64
	base.Session(&gorm.Session{}).Count(&orderCount)
	base.Session(&gorm.Session{}).Select("COALESCE(SUM(total_amount), 0)").Scan(&totalRevenue)

	type topMenu struct {
		MenuName string  `json:"menu_name"`
		Sold     int     `json:"sold"`
		Revenue  float64 `json:"revenue"`
	}
	var topMenus []topMenu
	rc.DB.Model(&models.OrderItem{}).
		Select("order_items.menu_name AS menu_name, SUM(order_items.quantity) AS sold, SUM(order_items.subtotal) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.tenant_id = ? AND orders.created_at BETWEEN ? AND ?", tenantID, start, end).
		Where("orders.order_status = ? AND orders.payment_status = ?", models.OrderCompleted, models.PaymentPaid).
		Group("order_items.menu_name").
		Order("sold DESC").
		Limit(10).
		Scan(&topMenus)

	type methodRow struct {
		Method  string  `json:"method"`
		Orders  int64   `json:"orders"`
		Revenue float64 `json:"revenue"`
	}
	var byMethod []methodRow
	base.Session(&gorm.Session{}).
		Select("payment_method AS method, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("payment_method").
		Order("revenue DESC").
		Scan(&byMethod)

	utils.RespondJSON(c, http.StatusOK, "Sales summary", gin.H{
		"start":             start.Format("2006-01-02"),
		"end":               end.Format("2006-01-02"),
		"order_count":       orderCount,
		"total_revenue":     totalRevenue,
		"revenue_formatted": utils.FormatCurrencyIDR(totalRevenue),
		"by_method":         byMethod,
		"top_menus":         topMenus,
	})
}

// SalesChart merender grafik omzet harian sebagai PNG.
func (rc *ReportController) SalesChart(c *gin.Context) {
	tenantID := tenantIDFromContext(c)
	start, end := reportRange(c)

	type dailyRow struct {
		Day     string
		Revenue float64
	}
	var rows []dailyRow
	rc.DB.Model(&models.Order{}).
		Select("DATE(created_at) AS day, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("tenant_id = ? AND created_at BETWEEN ? AND ?", tenantID, start, end).
		Where("order_status = ? AND payment_status = ?", models.OrderCompleted, models.PaymentPaid).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows)

	byDay := make(map[string]float64, len(rows))
	for _, r := range rows {
		byDay[r.Day] = r.Revenue
	}

	// Isi hari kosong dengan 0 supaya sumbu X kontinu
	var xValues []time.Time
	var yValues []float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		xValues = append(xValues, d)
		yValues = append(yValues, byDay[d.Format("2006-01-02")])
	}

	graph := chart.Chart{
		Title:  "Omzet Harian",
		Width:  900,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return utils.FormatCurrencyIDR(f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Omzet",
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	c.Header("Content-Type", "image/png")
	if err := graph.Render(chart.PNG, c.Writer); err != nil {
		utils.ErrorLogger.Printf("render chart gagal: %v", err)
		c.Status(http.StatusInternalServerError)
	}
}
