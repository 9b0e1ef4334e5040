package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/clean-connect/models"
	"github.com/yeremiapane/clean-connect/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// SeedDatabase -> drop semua tabel lalu isi ulang dengan data demo.
// Destruktif, hanya untuk development.
func (ac *AdminController) SeedDatabase(c *gin.Context) {
	if err := ac.DB.Migrator().DropTable(
		&models.CleanerRequest{},
		&models.CleanerService{},
		&models.User{},
	); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := ac.DB.AutoMigrate(
		&models.User{},
		&models.CleanerService{},
		&models.CleanerRequest{},
	); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kenyaPhone := "+254700000001"
	kenya := "Kenya"
	ugandaPhone := "+256700000002"
	uganda := "Uganda"
	clientPhone := "+254711000003"

	cleaner1 := models.User{
		Username:    "amina_cleaning",
		Email:       "amina@cleanconnect.dev",
		Password:    string(hashed),
		PhoneNumber: &kenyaPhone,
		Location:    &kenya,
		Role:        "cleaner",
	}
	cleaner2 := models.User{
		Username:    "joseph_laundry",
		Email:       "joseph@cleanconnect.dev",
		Password:    string(hashed),
		PhoneNumber: &ugandaPhone,
		Location:    &uganda,
		Role:        "cleaner",
	}
	client := models.User{
		Username:    "wanjiku",
		Email:       "wanjiku@cleanconnect.dev",
		Password:    string(hashed),
		PhoneNumber: &clientPhone,
		Location:    &kenya,
		Role:        "client",
	}

	tx := ac.DB.Begin()
	for _, user := range []*models.User{&cleaner1, &cleaner2, &client} {
		if err := tx.Create(user).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	services := []models.CleanerService{
		{UserID: cleaner1.ID, ServiceName: "General House Cleaning"},
		{UserID: cleaner1.ID, ServiceName: "Laundry Service"},
		{UserID: cleaner2.ID, ServiceName: "Laundry Service"},
		{UserID: cleaner2.ID, ServiceName: "Ironing"},
	}
	for _, service := range services {
		if err := tx.Create(&service).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	request := models.CleanerRequest{
		ClientID: client.ID,
		Location: kenya,
		Service:  "General House Cleaning",
		Status:   models.RequestStatusPending,
	}
	if err := tx.Create(&request).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Println("Database reseeded with demo data")

	utils.RespondJSON(c, http.StatusOK, "Database seeded", gin.H{
		"users":    3,
		"services": len(services),
		"requests": 1,
	})
}
