package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

type TenantController struct {
	DB *gorm.DB
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{DB: db}
}

// GetSettings -> pengaturan tenant yang dipakai struk dan checkout
func (tc *TenantController) GetSettings(c *gin.Context) {
	var tenant models.Tenant
	if err := tc.DB.Preload("Plan").Preload("BankAccounts").
		First(&tenant, tenantIDFromContext(c)).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tenant settings", tenant)
}

// UpdateSettings -> PATCH sebagian pengaturan tenant
func (tc *TenantController) UpdateSettings(c *gin.Context) {
	var tenant models.Tenant
	if err := tc.DB.First(&tenant, tenantIDFromContext(c)).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name         *string `json:"name"`
		Address      *string `json:"address"`
		Phone        *string `json:"phone"`
		WifiSSID     *string `json:"wifi_ssid"`
		WifiPassword *string `json:"wifi_password"`
		QRISEnabled  *bool   `json:"qris_enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Address != nil {
		tenant.Address = *req.Address
	}
	if req.Phone != nil {
		tenant.Phone = *req.Phone
	}
	if req.WifiSSID != nil {
		tenant.WifiSSID = *req.WifiSSID
	}
	if req.WifiPassword != nil {
		tenant.WifiPassword = *req.WifiPassword
	}
	if req.QRISEnabled != nil {
		tenant.QRISEnabled = *req.QRISEnabled
	}

	if err := tc.DB.Save(&tenant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tenant settings updated", tenant)
}

func (tc *TenantController) GetBankAccounts(c *gin.Context) {
	var accounts []models.BankAccount
	if err := tc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		Find(&accounts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bank accounts", accounts)
}

func (tc *TenantController) CreateBankAccount(c *gin.Context) {
	var req struct {
		BankName      string `json:"bank_name" binding:"required"`
		AccountNumber string `json:"account_number" binding:"required"`
		AccountHolder string `json:"account_holder" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	account := models.BankAccount{
		TenantID:      tenantIDFromContext(c),
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
	}
	if err := tc.DB.Create(&account).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Bank account created", account)
}

func (tc *TenantController) UpdateBankAccount(c *gin.Context) {
	var account models.BankAccount
	if err := tc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		First(&account, c.Param("account_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		BankName      *string `json:"bank_name"`
		AccountNumber *string `json:"account_number"`
		AccountHolder *string `json:"account_holder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.AccountHolder != nil {
		account.AccountHolder = *req.AccountHolder
	}

	if err := tc.DB.Save(&account).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bank account updated", account)
}

func (tc *TenantController) DeleteBankAccount(c *gin.Context) {
	res := tc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		Delete(&models.BankAccount{}, c.Param("account_id"))
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("rekening tidak ditemukan"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bank account deleted", gin.H{"account_id": c.Param("account_id")})
}
