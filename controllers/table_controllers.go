package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		Order("table_number ASC").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	tenantID := tenantIDFromContext(c)

	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Batas jumlah meja mengikuti plan tenant
	var tenant models.Tenant
	if err := tc.DB.Preload("Plan").First(&tenant, tenantID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	var count int64
	tc.DB.Model(&models.Table{}).Where("tenant_id = ?", tenantID).Count(&count)
	if tenant.Plan.MaxTables > 0 && count >= int64(tenant.Plan.MaxTables) {
		utils.RespondError(c, http.StatusForbidden, errors.New("jumlah meja sudah mencapai batas paket langganan"))
		return
	}

	table := models.Table{
		TenantID:    tenantID,
		TableNumber: req.TableNumber,
		QRToken:     uuid.NewString(),
		Status:      "available",
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("nomor meja sudah terdaftar"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		TableNumber *string `json:"table_number"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber != nil {
		table.TableNumber = *req.TableNumber
	}
	if req.Status != nil {
		table.Status = *req.Status
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// RegenerateQR mengganti token QR meja; QR lama langsung tidak berlaku.
func (tc *TableController) RegenerateQR(c *gin.Context) {
	var table models.Table
	if err := tc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.QRToken = uuid.NewString()
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("QR token meja %s diganti (tenant=%d)", table.TableNumber, table.TenantID)
	utils.RespondJSON(c, http.StatusOK, "QR token regenerated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	res := tc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		Delete(&models.Table{}, c.Param("table_id"))
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("meja tidak ditemukan"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": c.Param("table_id")})
}
