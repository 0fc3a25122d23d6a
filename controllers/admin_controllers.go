package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

// AdminController menangani operasi super admin lintas tenant.
type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

func (ac *AdminController) GetAllTenants(c *gin.Context) {
	var tenants []models.Tenant
	if err := ac.DB.Preload("Plan").Find(&tenants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tenants", tenants)
}

// CreateTenant membuat tenant baru sekaligus akun admin pertamanya.
func (ac *AdminController) CreateTenant(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		Slug          string `json:"slug" binding:"required"`
		PlanCode      string `json:"plan_code" binding:"required"`
		AdminName     string `json:"admin_name" binding:"required"`
		AdminEmail    string `json:"admin_email" binding:"required,email"`
		AdminPassword string `json:"admin_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var plan models.Plan
	if err := ac.DB.Where("code = ?", req.PlanCode).First(&plan).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("plan tidak ditemukan"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var tenant models.Tenant
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		tenant = models.Tenant{
			Name:     req.Name,
			Slug:     slug,
			PlanID:   plan.ID,
			IsActive: true,
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		admin := models.User{
			TenantID: &tenant.ID,
			Name:     req.AdminName,
			Email:    req.AdminEmail,
			Password: string(hashed),
			Role:     models.RoleAdmin,
		}
		return tx.Create(&admin).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("slug atau email admin sudah terdaftar"))
		return
	}

	utils.InfoLogger.Printf("Tenant baru dibuat: %s (%s)", tenant.Name, tenant.Slug)
	utils.RespondJSON(c, http.StatusCreated, "Tenant created", tenant)
}

func (ac *AdminController) UpdateTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := ac.DB.First(&tenant, c.Param("tenant_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name     *string `json:"name"`
		PlanCode *string `json:"plan_code"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.PlanCode != nil {
		var plan models.Plan
		if err := ac.DB.Where("code = ?", *req.PlanCode).First(&plan).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("plan tidak ditemukan"))
			return
		}
		tenant.PlanID = plan.ID
	}
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}

	if err := ac.DB.Save(&tenant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tenant updated", tenant)
}

func (ac *AdminController) GetAllPlans(c *gin.Context) {
	var plans []models.Plan
	if err := ac.DB.Order("monthly_price ASC").Find(&plans).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of plans", plans)
}

func (ac *AdminController) CreatePlan(c *gin.Context) {
	var req struct {
		Code         string  `json:"code" binding:"required"`
		Name         string  `json:"name" binding:"required"`
		MaxTables    int     `json:"max_tables"`
		MaxMenus     int     `json:"max_menus"`
		MonthlyPrice float64 `json:"monthly_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	plan := models.Plan{
		Code:         req.Code,
		Name:         req.Name,
		MaxTables:    req.MaxTables,
		MaxMenus:     req.MaxMenus,
		MonthlyPrice: req.MonthlyPrice,
	}
	if err := ac.DB.Create(&plan).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("kode plan sudah terdaftar"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Plan created", plan)
}
