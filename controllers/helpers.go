package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/models"
)

var ErrNoPermission = errors.New("you do not have permission")

// tenantIDFromContext mengambil tenant id yang diset auth middleware.
func tenantIDFromContext(c *gin.Context) uint {
	v, ok := c.Get("tenantID")
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}

func userIDFromContext(c *gin.Context) uint {
	v, ok := c.Get("userID")
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}

// tenantBySlug me-resolve tenant aktif dari path publik /api/public/:tenant/...
func tenantBySlug(db *gorm.DB, slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := db.Preload("BankAccounts").Where("slug = ? AND is_active = ?", slug, true).
		First(&tenant).Error; err != nil {
		return nil, errors.New("tenant tidak ditemukan atau tidak aktif")
	}
	return &tenant, nil
}
