package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/clean-connect/dispatch"
	"github.com/yeremiapane/clean-connect/models"
	"github.com/yeremiapane/clean-connect/utils"
)

type RequestController struct {
	DB *gorm.DB
}

func NewRequestController(db *gorm.DB) *RequestController {
	return &RequestController{DB: db}
}

// ConnectWithCleaner -> client membuat request baru (status Pending) dan
// menerima daftar semua cleaner yang terdaftar sebagai kandidat.
func (rc *RequestController) ConnectWithCleaner(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type reqBody struct {
		Location string `json:"location" binding:"required"`
		Service  string `json:"service" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	request := models.CleanerRequest{
		ClientID: userID,
		Location: body.Location,
		Service:  body.Service,
		Status:   models.RequestStatusPending,
	}
	if err := rc.DB.Create(&request).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Kembalikan semua cleaner tanpa filter lokasi/layanan; pemilihan
	// dilakukan client lewat select_cleaner.
	var cleaners []models.User
	if err := rc.DB.Where("role = ?", "cleaner").Find(&cleaners).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	available := make([]gin.H, 0, len(cleaners))
	for _, cleaner := range cleaners {
		available = append(available, gin.H{
			"id":           cleaner.ID,
			"username":     cleaner.Username,
			"email":        cleaner.Email,
			"phone_number": cleaner.PhoneNumber,
			"location":     cleaner.Location,
		})
	}

	utils.InfoLogger.Printf("New cleaner request %d from user %d (%s / %s)",
		request.ID, userID, request.Location, request.Service)

	dispatch.BroadcastRequestCreated(request)

	utils.RespondJSON(c, http.StatusCreated, "Request created", gin.H{
		"request_id":         request.ID,
		"available_cleaners": available,
	})
}

// SelectCleaner -> assign cleaner ke request. Check-then-set dilakukan lewat
// satu UPDATE kondisional: hanya row tanpa cleaner yang bisa di-claim, jadi
// assignment yang commit duluan menang dan percobaan berikutnya gagal.
func (rc *RequestController) SelectCleaner(c *gin.Context) {
	type reqBody struct {
		CleanerID uint `json:"cleaner_id" binding:"required"`
		RequestID uint `json:"request_id" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var cleaner models.User
	if err := rc.DB.Where("id = ? AND role = ?", body.CleanerID, "cleaner").
		First(&cleaner).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("cleaner not found"))
		return
	}

	var request models.CleanerRequest
	if err := rc.DB.First(&request, body.RequestID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("request not found"))
		return
	}

	res := rc.DB.Model(&models.CleanerRequest{}).
		Where("id = ? AND cleaner_id IS NULL", request.ID).
		Updates(map[string]interface{}{
			"cleaner_id": cleaner.ID,
			"status":     models.RequestStatusAssigned,
		})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		// Assignment lain sudah commit duluan
		utils.RespondError(c, http.StatusBadRequest, errors.New("request already assigned to a cleaner"))
		return
	}

	request.CleanerID = &cleaner.ID
	request.Status = models.RequestStatusAssigned

	utils.InfoLogger.Printf("Request %d assigned to cleaner %d", request.ID, cleaner.ID)

	dispatch.BroadcastRequestAssigned(request)

	utils.RespondJSON(c, http.StatusOK, "Cleaner assigned", request)
}

// UpdateRequestStatus -> hanya client pemilik request atau cleaner yang
// di-assign yang boleh mengubah status. Status berupa string bebas.
func (rc *RequestController) UpdateRequestStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	idStr := c.Param("request_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid request id"))
		return
	}

	type reqBody struct {
		Status string `json:"status" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var request models.CleanerRequest
	if err := rc.DB.First(&request, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	isClient := request.ClientID == userID
	isAssignedCleaner := request.CleanerID != nil && *request.CleanerID == userID
	if !isClient && !isAssignedCleaner {
		utils.RespondError(c, http.StatusForbidden, errors.New("you are not allowed to update this request"))
		return
	}

	request.Status = body.Status
	if err := rc.DB.Save(&request).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	dispatch.BroadcastStatusUpdate(request)

	utils.RespondJSON(c, http.StatusOK, "Request status updated", request)
}
