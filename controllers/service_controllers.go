package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/clean-connect/models"
	"github.com/yeremiapane/clean-connect/utils"
)

type ServiceController struct {
	DB *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db}
}

// GetAllCleanerServices -> listing publik seluruh layanan cleaner
func (sc *ServiceController) GetAllCleanerServices(c *gin.Context) {
	var services []models.CleanerService
	if err := sc.DB.Find(&services).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All cleaner services", services)
}
