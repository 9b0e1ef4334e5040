package Controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/clean-connect/controllers"
	"github.com/yeremiapane/clean-connect/middlewares"
	"github.com/yeremiapane/clean-connect/models"
	"github.com/yeremiapane/clean-connect/utils"
)

func setupRequestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	requestCtrl := controllers.NewRequestController(db)

	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.POST("/connect_with_cleaner", requestCtrl.ConnectWithCleaner)
	auth.POST("/select_cleaner", requestCtrl.SelectCleaner)
	auth.PUT("/requests/:request_id/update_status", requestCtrl.UpdateRequestStatus)

	return router
}

// seedUser membuat user langsung di DB dan mengembalikan token-nya
func seedUser(t *testing.T, db *gorm.DB, username, email, role, location string) (models.User, string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		Location: &location,
	}
	assert.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID, user.Role)
	assert.NoError(t, err)
	return user, token
}

func TestConnectWithCleanerReturnsAllCleaners(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("request_connect")
	router := setupRequestRouter(db)

	_, clientToken := seedUser(t, db, "client1", "client1@example.com", "client", "Kenya")
	seedUser(t, db, "cleaner_ke", "cleaner_ke@example.com", "cleaner", "Kenya")
	seedUser(t, db, "cleaner_ug", "cleaner_ug@example.com", "cleaner", "Uganda")

	w := doJSON(t, router, "POST", "/connect_with_cleaner", clientToken, map[string]string{
		"location": "Kenya",
		"service":  "Laundry",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := parseBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.NotNil(t, data["request_id"])

	// Semua cleaner dikembalikan, tidak difilter lokasi/layanan
	available := data["available_cleaners"].([]interface{})
	assert.Len(t, available, 2)

	// Request tersimpan dengan status Pending tanpa cleaner
	var request models.CleanerRequest
	assert.NoError(t, db.First(&request, uint(data["request_id"].(float64))).Error)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Nil(t, request.CleanerID)
	assert.Equal(t, "Kenya", request.Location)
	assert.Equal(t, "Laundry", request.Service)
}

func TestConnectWithCleanerMissingFields(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("request_connect_invalid")
	router := setupRequestRouter(db)

	_, clientToken := seedUser(t, db, "client2", "client2@example.com", "client", "Kenya")

	w := doJSON(t, router, "POST", "/connect_with_cleaner", clientToken, map[string]string{
		"location": "Kenya",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectCleanerTwiceFails(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("request_select_twice")
	router := setupRequestRouter(db)

	client, clientToken := seedUser(t, db, "client3", "client3@example.com", "client", "Kenya")
	cleaner1, _ := seedUser(t, db, "cleaner1", "cleaner1@example.com", "cleaner", "Kenya")
	cleaner2, _ := seedUser(t, db, "cleaner2", "cleaner2@example.com", "cleaner", "Kenya")

	request := models.CleanerRequest{
		ClientID: client.ID,
		Location: "Kenya",
		Service:  "Laundry",
		Status:   models.RequestStatusPending,
	}
	assert.NoError(t, db.Create(&request).Error)

	// Assignment pertama berhasil
	w := doJSON(t, router, "POST", "/select_cleaner", clientToken, map[string]uint{
		"cleaner_id": cleaner1.ID,
		"request_id": request.ID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Assignment kedua dengan cleaner berbeda harus gagal 400
	w = doJSON(t, router, "POST", "/select_cleaner", clientToken, map[string]uint{
		"cleaner_id": cleaner2.ID,
		"request_id": request.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := parseBody(t, w)
	assert.Equal(t, "request already assigned to a cleaner", resp["message"])

	// Assignment pertama harus tetap utuh
	var stored models.CleanerRequest
	assert.NoError(t, db.First(&stored, request.ID).Error)
	assert.NotNil(t, stored.CleanerID)
	assert.Equal(t, cleaner1.ID, *stored.CleanerID)
	assert.Equal(t, models.RequestStatusAssigned, stored.Status)
}

func TestSelectCleanerFirstWriteWins(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("request_first_write_wins")
	router := setupRequestRouter(db)

	client, clientToken := seedUser(t, db, "client7", "client7@example.com", "client", "Kenya")
	winner, _ := seedUser(t, db, "winner", "winner@example.com", "cleaner", "Kenya")
	loser, _ := seedUser(t, db, "loser", "loser@example.com", "cleaner", "Kenya")

	request := models.CleanerRequest{
		ClientID: client.ID,
		Location: "Kenya",
		Service:  "Laundry",
		Status:   models.RequestStatusPending,
	}
	assert.NoError(t, db.Create(&request).Error)

	// Simulasikan assignment lain yang commit lebih dulu: cleaner_id sudah
	// terisi di database sebelum handler sempat menulis
	assert.NoError(t, db.Model(&models.CleanerRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"cleaner_id": winner.ID,
			"status":     models.RequestStatusAssigned,
		}).Error)

	w := doJSON(t, router, "POST", "/select_cleaner", clientToken, map[string]uint{
		"cleaner_id": loser.ID,
		"request_id": request.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := parseBody(t, w)
	assert.Equal(t, "request already assigned to a cleaner", resp["message"])

	// Penulisan pertama harus tetap menang
	var stored models.CleanerRequest
	assert.NoError(t, db.First(&stored, request.ID).Error)
	assert.NotNil(t, stored.CleanerID)
	assert.Equal(t, winner.ID, *stored.CleanerID)
	assert.Equal(t, models.RequestStatusAssigned, stored.Status)
}

func TestSelectCleanerNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("request_select_notfound")
	router := setupRequestRouter(db)

	client, clientToken := seedUser(t, db, "client4", "client4@example.com", "client", "Kenya")
	cleaner, _ := seedUser(t, db, "cleaner4", "cleaner4@example.com", "cleaner", "Kenya")

	request := models.CleanerRequest{
		ClientID: client.ID,
		Location: "Kenya",
		Service:  "Laundry",
		Status:   models.RequestStatusPending,
	}
	assert.NoError(t, db.Create(&request).Error)

	// Cleaner tidak ada
	w := doJSON(t, router, "POST", "/select_cleaner", clientToken, map[string]uint{
		"cleaner_id": 9999,
		"request_id": request.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Client biasa tidak boleh dipakai sebagai cleaner
	w = doJSON(t, router, "POST", "/select_cleaner", clientToken, map[string]uint{
		"cleaner_id": client.ID,
		"request_id": request.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Request tidak ada
	w = doJSON(t, router, "POST", "/select_cleaner", clientToken, map[string]uint{
		"cleaner_id": cleaner.ID,
		"request_id": 9999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusAuthorization(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("request_update_status")
	router := setupRequestRouter(db)

	client, clientToken := seedUser(t, db, "client5", "client5@example.com", "client", "Kenya")
	cleaner, cleanerToken := seedUser(t, db, "cleaner5", "cleaner5@example.com", "cleaner", "Kenya")
	_, strangerToken := seedUser(t, db, "stranger", "stranger@example.com", "client", "Uganda")

	request := models.CleanerRequest{
		ClientID:  client.ID,
		Location:  "Kenya",
		Service:   "Laundry",
		Status:    models.RequestStatusAssigned,
		CleanerID: &cleaner.ID,
	}
	assert.NoError(t, db.Create(&request).Error)

	url := "/requests/" + itoa(request.ID) + "/update_status"

	// User lain -> 403, status tidak berubah
	w := doJSON(t, router, "PUT", url, strangerToken, map[string]string{
		"status": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.CleanerRequest
	assert.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, models.RequestStatusAssigned, stored.Status)

	// Cleaner yang di-assign boleh
	w = doJSON(t, router, "PUT", url, cleanerToken, map[string]string{
		"status": "In Progress",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, "In Progress", stored.Status)

	// Client pemilik request juga boleh
	w = doJSON(t, router, "PUT", url, clientToken, map[string]string{
		"status": "Completed",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, "Completed", stored.Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB("request_update_notfound")
	router := setupRequestRouter(db)

	_, token := seedUser(t, db, "client6", "client6@example.com", "client", "Kenya")

	w := doJSON(t, router, "PUT", "/requests/12345/update_status", token, map[string]string{
		"status": "Completed",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Path segment non-numerik harus ditolak 400, bukan dianggap id 0
	w = doJSON(t, router, "PUT", "/requests/abc/update_status", token, map[string]string{
		"status": "Completed",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
