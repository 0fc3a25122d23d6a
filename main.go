package main

import (
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/config"
	"github.com/pandukusuma/qr-order-app/live"
	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/router"
	"github.com/pandukusuma/qr-order-app/services"
	"github.com/pandukusuma/qr-order-app/utils"
)

func main() {
	utils.InitLogger()
	config.LoadEnv()

	demoMode := os.Getenv("APP_MODE") == "demo"

	var db *gorm.DB
	var err error
	if demoMode {
		// Mode demo: sqlite in-memory untuk data master, order di memory
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
		if err == nil {
			err = config.AutoMigrate(db)
		}
	} else {
		db, err = config.InitDB()
	}
	if err != nil {
		utils.ErrorLogger.Fatalf("Inisialisasi database gagal: %v", err)
	}
	utils.InitDB(db)

	plansPath := os.Getenv("PLANS_FILE")
	if plansPath == "" {
		plansPath = "config/plans.yaml"
	}
	if err := config.SeedPlans(db, plansPath); err != nil {
		utils.ErrorLogger.Fatalf("Seed plan gagal: %v", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	spoolDir := os.Getenv("SPOOL_DIR")
	if spoolDir == "" {
		spoolDir = "spool"
	}
	for _, dir := range []string{uploadDir, spoolDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			utils.ErrorLogger.Fatalf("Gagal membuat direktori %s: %v", dir, err)
		}
	}

	carts := services.NewCartStore(2 * time.Hour)
	stopSweeper := make(chan struct{})
	carts.StartSweeper(10*time.Minute, stopSweeper)
	defer close(stopSweeper)

	var repo services.OrderRepository
	if demoMode {
		menus, options := seedDemoCatalog(db)
		repo = services.NewMemoryOrderRepository(menus, options)
		utils.InfoLogger.Println("APP_MODE=demo: order disimpan di memory")
	} else {
		repo = services.NewGormOrderRepository(db)
	}

	hub := live.NewHub()
	gateway := services.NewPaymentGateway()

	printer := services.NewInvoicePrinter(
		&services.FileSpoolDriver{Dir: spoolDir},
		repo,
		func(tenantID uint) (*models.Tenant, error) {
			var tenant models.Tenant
			if err := db.Preload("BankAccounts").First(&tenant, tenantID).Error; err != nil {
				return nil, err
			}
			return &tenant, nil
		},
	)
	printer.OnComplete = func(result services.PrintResult) {
		hub.BroadcastPrintResult(result.TenantID, result)
	}

	workflow := services.NewOrderWorkflow(repo, printer)

	r := router.SetupRouter(router.Deps{
		DB:        db,
		Carts:     carts,
		Repo:      repo,
		Workflow:  workflow,
		Printer:   printer,
		Gateway:   gateway,
		Hub:       hub,
		UploadDir: uploadDir,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.InfoLogger.Printf("Server berjalan di port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("Server berhenti: %v", err)
	}
}

// seedDemoCatalog mengisi tenant, meja, dan menu contoh untuk mode demo,
// lalu mengembalikan katalog yang dipakai MemoryOrderRepository.
func seedDemoCatalog(db *gorm.DB) ([]models.Menu, []models.OptionItem) {
	var plan models.Plan
	db.Where("code = ?", "free").First(&plan)

	tenant := models.Tenant{
		Name:     "Kopi Demo",
		Slug:     "demo",
		PlanID:   plan.ID,
		IsActive: true,
		Address:  "Jl. Contoh No. 1",
		WifiSSID: "KopiDemo",
	}
	db.Create(&tenant)

	db.Create(&models.Table{TenantID: tenant.ID, TableNumber: "1", QRToken: "demo-table-1", Status: "available"})

	category := models.MenuCategory{TenantID: tenant.ID, Name: "Kopi", SortOrder: 1}
	db.Create(&category)

	sizeGroup := models.OptionGroup{
		TenantID:      tenant.ID,
		Name:          "Ukuran",
		SelectionType: models.SelectionSingle,
		IsRequired:    true,
	}
	db.Create(&sizeGroup)

	options := []models.OptionItem{
		{GroupID: sizeGroup.ID, Label: "Regular", ExtraPrice: 0, IsActive: true, SortOrder: 1},
		{GroupID: sizeGroup.ID, Label: "Large", ExtraPrice: 5000, IsActive: true, SortOrder: 2},
	}
	db.Create(&options)

	menus := []models.Menu{
		{TenantID: tenant.ID, CategoryID: category.ID, Name: "Kopi Susu", Price: 18000, IsAvailable: true},
		{TenantID: tenant.ID, CategoryID: category.ID, Name: "Americano", Price: 15000, IsAvailable: true},
	}
	db.Create(&menus)
	for i := range menus {
		db.Model(&menus[i]).Association("OptionGroups").Append(&sizeGroup)
	}

	return menus, options
}
