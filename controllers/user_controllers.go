package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/clean-connect/models"
	"github.com/yeremiapane/clean-connect/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register user baru (client atau cleaner). Untuk cleaner, field services
// berisi daftar nama layanan dipisah koma dan disimpan satu row per layanan.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Username    string `json:"username" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		Role        string `json:"role" binding:"required"` // client, cleaner
		Country     string `json:"country" binding:"required"`
		PhoneNumber string `json:"phone_number"`
		Services    string `json:"services"` // "Laundry, Ironing"
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Email harus unik
	var existing models.User
	if err := uc.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email already registered"))
		return
	}

	// Hash password
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
		Location: &req.Country,
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = &req.PhoneNumber
	}

	// User + layanan cleaner disimpan dalam satu transaksi
	tx := uc.DB.Begin()

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if user.Role == "cleaner" && req.Services != "" {
		for _, name := range strings.Split(req.Services, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			service := models.CleanerService{
				UserID:      user.ID,
				ServiceName: name,
			}
			if err := tx.Create(&service).Error; err != nil {
				tx.Rollback()
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login -> identifier boleh email atau nomor telepon, return JWT 1 jam
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ? OR phone_number = ?", input.Identifier, input.Identifier).
		First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	// Generate token
	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Catat last login
	now := time.Now()
	user.LastLogin = &now
	if err := uc.DB.Save(&user).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to record last login for user %d: %v", user.ID, err)
	}

	utils.InfoLogger.Printf("Login successful for user: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"access_token": token,
		"user_role":    strings.ToLower(user.Role),
	})
}

// GetProfile -> profil role-dependent berdasarkan user dari JWT
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	profile := gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"phone_number": user.PhoneNumber,
		"location":     user.Location,
		"role":         user.Role,
		"last_login":   user.LastLogin,
	}

	switch user.Role {
	case "cleaner":
		// Layanan yang ditawarkan cleaner ini
		var services []models.CleanerService
		if err := uc.DB.Where("user_id = ?", user.ID).Find(&services).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		names := make([]string, 0, len(services))
		for _, s := range services {
			names = append(names, s.ServiceName)
		}
		profile["services"] = names

		// Request yang sedang di-assign ke cleaner ini
		var requests []models.CleanerRequest
		if err := uc.DB.Where("cleaner_id = ?", user.ID).Find(&requests).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		assigned := make([]gin.H, 0, len(requests))
		for _, req := range requests {
			entry := gin.H{
				"request_id": req.ID,
				"location":   req.Location,
				"service":    req.Service,
				"status":     req.Status,
			}
			var client models.User
			if err := uc.DB.First(&client, req.ClientID).Error; err == nil {
				entry["client_name"] = client.Username
			}
			assigned = append(assigned, entry)
		}
		profile["assigned_requests"] = assigned

	default:
		// Client: tampilkan request Assigned yang lokasinya sama dengan
		// lokasi client
		location := ""
		if user.Location != nil {
			location = *user.Location
		}

		var requests []models.CleanerRequest
		if err := uc.DB.Where("status = ? AND location = ?", models.RequestStatusAssigned, location).
			Find(&requests).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		assigned := make([]gin.H, 0, len(requests))
		for _, req := range requests {
			entry := gin.H{
				"request_id": req.ID,
				"service":    req.Service,
				"status":     req.Status,
			}
			if req.CleanerID != nil {
				var cleaner models.User
				if err := uc.DB.First(&cleaner, *req.CleanerID).Error; err == nil {
					entry["cleaner_name"] = cleaner.Username
				}
			}
			assigned = append(assigned, entry)
		}
		profile["assigned_requests"] = assigned
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", profile)
}

// UpdateProfile -> hanya field yang dikirim yang diubah
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type request struct {
		Username    *string `json:"username"`
		Email       *string `json:"email"`
		PhoneNumber *string `json:"phone_number"`
		Location    *string `json:"location"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Location != nil {
		user.Location = req.Location
	}

	tx := uc.DB.Begin()
	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated", gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"phone_number": user.PhoneNumber,
		"location":     user.Location,
		"role":         user.Role,
	})
}

// GetAllUsers -> listing publik tanpa pagination
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

// currentUserID mengambil user_id yang diset AuthMiddleware
func currentUserID(c *gin.Context) (uint, bool) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return 0, false
	}

	userID, ok := userIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid user id type"))
		return 0, false
	}

	return userID, true
}
