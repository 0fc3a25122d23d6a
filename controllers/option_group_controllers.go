package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pandukusuma/qr-order-app/models"
	"github.com/pandukusuma/qr-order-app/utils"
)

type OptionGroupController struct {
	DB *gorm.DB
}

func NewOptionGroupController(db *gorm.DB) *OptionGroupController {
	return &OptionGroupController{DB: db}
}

func (oc *OptionGroupController) GetAllGroups(c *gin.Context) {
	var groups []models.OptionGroup
	if err := oc.DB.Preload("OptionItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("tenant_id = ?", tenantIDFromContext(c)).
		Find(&groups).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of option groups", groups)
}

func (oc *OptionGroupController) CreateGroup(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		SelectionType string `json:"selection_type" binding:"required"`
		IsRequired    bool   `json:"is_required"`
		MinSelect     *int   `json:"min_select"`
		MaxSelect     *int   `json:"max_select"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.SelectionType != models.SelectionSingle && req.SelectionType != models.SelectionMultiple {
		utils.RespondError(c, http.StatusBadRequest, errors.New("selection_type harus single atau multiple"))
		return
	}
	// min/max hanya bermakna untuk multiple
	if req.SelectionType == models.SelectionSingle {
		req.MinSelect = nil
		req.MaxSelect = nil
	}
	if req.MinSelect != nil && req.MaxSelect != nil && *req.MinSelect > *req.MaxSelect {
		utils.RespondError(c, http.StatusBadRequest, errors.New("min_select tidak boleh lebih besar dari max_select"))
		return
	}

	group := models.OptionGroup{
		TenantID:      tenantIDFromContext(c),
		Name:          req.Name,
		SelectionType: req.SelectionType,
		IsRequired:    req.IsRequired,
		MinSelect:     req.MinSelect,
		MaxSelect:     req.MaxSelect,
	}
	if err := oc.DB.Create(&group).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Option group created", group)
}

func (oc *OptionGroupController) UpdateGroup(c *gin.Context) {
	var group models.OptionGroup
	if err := oc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		First(&group, c.Param("group_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name       *string `json:"name"`
		IsRequired *bool   `json:"is_required"`
		MinSelect  *int    `json:"min_select"`
		MaxSelect  *int    `json:"max_select"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.IsRequired != nil {
		group.IsRequired = *req.IsRequired
	}
	if group.SelectionType == models.SelectionMultiple {
		if req.MinSelect != nil {
			group.MinSelect = req.MinSelect
		}
		if req.MaxSelect != nil {
			group.MaxSelect = req.MaxSelect
		}
	}

	if err := oc.DB.Save(&group).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Option group updated", group)
}

func (oc *OptionGroupController) DeleteGroup(c *gin.Context) {
	res := oc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		Delete(&models.OptionGroup{}, c.Param("group_id"))
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("option group tidak ditemukan"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Option group deleted", gin.H{"group_id": c.Param("group_id")})
}

// CreateItem menambahkan pilihan baru ke sebuah group
func (oc *OptionGroupController) CreateItem(c *gin.Context) {
	var group models.OptionGroup
	if err := oc.DB.Where("tenant_id = ?", tenantIDFromContext(c)).
		First(&group, c.Param("group_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Label      string  `json:"label" binding:"required"`
		ExtraPrice float64 `json:"extra_price"`
		SortOrder  int     `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.ExtraPrice < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("extra_price tidak boleh negatif"))
		return
	}

	item := models.OptionItem{
		GroupID:    group.ID,
		Label:      req.Label,
		ExtraPrice: req.ExtraPrice,
		IsActive:   true,
		SortOrder:  req.SortOrder,
	}
	if err := oc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Option item created", item)
}

func (oc *OptionGroupController) UpdateItem(c *gin.Context) {
	tenantID := tenantIDFromContext(c)

	var item models.OptionItem
	if err := oc.DB.Joins("JOIN option_groups ON option_groups.id = option_items.group_id").
		Where("option_groups.tenant_id = ?", tenantID).
		First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Label      *string  `json:"label"`
		ExtraPrice *float64 `json:"extra_price"`
		IsActive   *bool    `json:"is_active"`
		SortOrder  *int     `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Label != nil {
		item.Label = *req.Label
	}
	if req.ExtraPrice != nil {
		if *req.ExtraPrice < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("extra_price tidak boleh negatif"))
			return
		}
		item.ExtraPrice = *req.ExtraPrice
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := oc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Option item updated", item)
}

func (oc *OptionGroupController) DeleteItem(c *gin.Context) {
	tenantID := tenantIDFromContext(c)

	var item models.OptionItem
	if err := oc.DB.Joins("JOIN option_groups ON option_groups.id = option_items.group_id").
		Where("option_groups.tenant_id = ?", tenantID).
		First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := oc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Option item deleted", gin.H{"item_id": c.Param("item_id")})
}
