package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus -> semua menu tenant, termasuk option groups
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Preload("Category").Preload("OptionGroups.OptionItems").
		Where("tenant_id = ?", tenantIDFromContext(c)).
		Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	var menu models.Menu
	if err := mc.DB.Preload("Category").Preload("OptionGroups.OptionItems").
		Where("tenant_id = ?", tenantIDFromContext(c)).
		First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	tenantID := tenantIDFromContext(c)

	var req struct {
		CategoryID     uint    `json:"category_id" binding:"required"`
		Name           string  `json:"name" binding:"required"`
		Description    string  `json:"description"`
		Price          float64 `json:"price" binding:"required"`
		Stock          *int    `json:"stock"`
		OptionGroupIDs []uint  `json:"option_group_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Kategori harus milik tenant yang sama
	var category models.MenuCategory
	if err := mc.DB.Where("tenant_id = ?", tenantID).
		First(&category, req.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("kategori tidak ditemukan"))
		return
	}

	menu := models.Menu{
		TenantID:    tenantID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: true,
		Stock:       req.Stock,
	}
	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(req.OptionGroupIDs) > 0 {
		var groups []models.OptionGroup
		if err := mc.DB.Where("tenant_id = ? AND id IN ?", tenantID, req.OptionGroupIDs).
			Find(&groups).Error; err == nil {
			mc.DB.Model(&menu).Association("OptionGroups").Replace(groups)
		}
	}

	utils.InfoLogger.Printf("Menu created: %s (tenant=%d)", menu.Name, tenantID)
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	tenantID := tenantIDFromContext(c)

	var menu models.Menu
	if err := mc.DB.Where("tenant_id = ?", tenantID).
		First(&menu, c.Param("menu_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		CategoryID     *uint    `json:"category_id"`
		Name           *string  `json:"name"`
		Description    *string  `json:"description"`
		Price          *float64 `json:"price"`
		IsAvailable    *bool    `json:"is_available"`
		Stock          *int     `json:"stock"`
		OptionGroupIDs []uint   `json:"option_group_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoryID != nil {
		menu.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.IsAvailable != nil {
		menu.IsAvailable = *req.IsAvailable
	}
	if req.Stock != nil {
		menu.Stock = req.Stock
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if req.OptionGroupIDs != nil {
		var groups []models.OptionGroup
		if err := mc.DB.Where("tenant_id = ? AND id IN ?", tenantID, req.OptionGroupIDs).
			Find(&groups).Error; err == nil {
			mc.DB.Model(&menu).Association("OptionGroups").Replace(groups)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	res := mc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		Delete(&models.Menu{}, c.Param("menu_id"))
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu tidak ditemukan"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": c.Param("menu_id")})
}
