package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

// LoadEnv membaca file .env bila ada; di produksi env di-set dari luar.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("File .env tidak ditemukan, memakai environment sistem")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB membuka koneksi MySQL dan menjalankan auto-migrate.
func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		getEnv("DB_USER", "root"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_HOST", "127.0.0.1"),
		getEnv("DB_PORT", "3306"),
		getEnv("DB_NAME", "qr_order"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	utils.InfoLogger.Println("Database terkoneksi dan termigrasi")
	return db, nil
}

// AutoMigrate menjalankan migrasi skema untuk semua model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Plan{},
		&models.Tenant{},
		&models.BankAccount{},
		&models.User{},
		&models.Table{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.OptionGroup{},
		&models.OptionItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
		&models.Payment{},
	)
}

type planCatalog struct {
	Plans []struct {
		Code         string  `yaml:"code"`
		Name         string  `yaml:"name"`
		MaxTables    int     `yaml:"max_tables"`
		MaxMenus     int     `yaml:"max_menus"`
		MonthlyPrice float64 `yaml:"monthly_price"`
	} `yaml:"plans"`
}

// SeedPlans memuat katalog paket langganan dari file yaml dan
// meng-upsert-nya berdasarkan kode.
func SeedPlans(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("gagal membaca katalog plan: %w", err)
	}

	var catalog planCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return fmt.Errorf("katalog plan tidak valid: %w", err)
	}

	for _, p := range catalog.Plans {
		var plan models.Plan
		err := db.Where("code = ?", p.Code).First(&plan).Error
		if err == gorm.ErrRecordNotFound {
			plan = models.Plan{Code: p.Code}
		} else if err != nil {
			return err
		}

		plan.Name = p.Name
		plan.MaxTables = p.MaxTables
		plan.MaxMenus = p.MaxMenus
		plan.MonthlyPrice = p.MonthlyPrice

		if err := db.Save(&plan).Error; err != nil {
			return err
		}
	}

	utils.InfoLogger.Printf("Katalog plan dimuat: %d paket", len(catalog.Plans))
	return nil
}
