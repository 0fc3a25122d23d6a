package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

func init() {
	utils.InitLogger()
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func writePlans(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedPlansUpserts(t *testing.T) {
	db := openTestDB(t)

	path := writePlans(t, `
plans:
  - code: free
    name: Free
    max_tables: 5
    max_menus: 20
    monthly_price: 0
  - code: pro
    name: Pro
    max_tables: 0
    max_menus: 0
    monthly_price: 399000
`)
	require.NoError(t, SeedPlans(db, path))

	var count int64
	db.Model(&models.Plan{}).Count(&count)
	assert.Equal(t, int64(2), count)

	// Seed ulang dengan harga baru: update, bukan duplikat
	path = writePlans(t, `
plans:
  - code: pro
    name: Pro
    max_tables: 0
    max_menus: 0
    monthly_price: 449000
`)
	require.NoError(t, SeedPlans(db, path))

	db.Model(&models.Plan{}).Count(&count)
	assert.Equal(t, int64(2), count)

	var pro models.Plan
	require.NoError(t, db.Where("code = ?", "pro").First(&pro).Error)
	assert.Equal(t, 449000.0, pro.MonthlyPrice)
}

func TestSeedPlansRejectsInvalidFile(t *testing.T) {
	db := openTestDB(t)

	assert.Error(t, SeedPlans(db, filepath.Join(t.TempDir(), "tidak-ada.yaml")))

	path := writePlans(t, "plans: [bukan, struktur, plan")
	assert.Error(t, SeedPlans(db, path))
}
