package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kuoklimg/voucher-pool/internal/models"
	"github.com/kuoklimg/voucher-pool/internal/repository"
	"github.com/kuoklimg/voucher-pool/internal/server"
	"github.com/kuoklimg/voucher-pool/internal/service"
)

type apiFixture struct {
	db     *gorm.DB
	router *gin.Engine
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Recipient{}, &models.SpecialOffer{}, &models.VoucherCode{}))

	pool := service.NewVoucherPool(
		repository.NewRecipientRepo(db),
		repository.NewSpecialOfferRepo(db),
		repository.NewVoucherRepo(db),
		nil,
	)

	router := gin.New()
	server.SetupRoutes(router, pool)
	return &apiFixture{db: db, router: router}
}

func (f *apiFixture) seed(t *testing.T) *models.SpecialOffer {
	t.Helper()
	recipient := models.Recipient{Email: "a@x.com", Name: "Alice"}
	require.NoError(t, f.db.Create(&recipient).Error)
	offer := models.SpecialOffer{Name: "Sale", DiscountPercentage: 20.0}
	require.NoError(t, f.db.Create(&offer).Error)
	return &offer
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestGenerateEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t)

	w := f.do(t, http.MethodPost, "/v1/vouchers/generate", gin.H{
		"email":           "a@x.com",
		"special_offer":   "Sale",
		"expiration_date": futureDate(30),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	code, ok := body["code"].(string)
	require.True(t, ok)
	assert.Len(t, code, 8)
}

func TestGenerateEndpoint_UnknownRecipient(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t)

	w := f.do(t, http.MethodPost, "/v1/vouchers/generate", gin.H{
		"email":           "nobody@x.com",
		"special_offer":   "Sale",
		"expiration_date": futureDate(30),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Bad Request", body["error"])
	assert.Equal(t, "Recipient not found", body["message"])
}

func TestValidateEndpoint_FullLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t)

	w := f.do(t, http.MethodPost, "/v1/vouchers/generate", gin.H{
		"email":           "a@x.com",
		"special_offer":   "Sale",
		"expiration_date": futureDate(30),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	code := decode(t, w)["code"].(string)

	w = f.do(t, http.MethodPost, "/v1/vouchers/validate", gin.H{
		"code":  code,
		"email": "a@x.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 20.0, body["discount"])
	assert.Equal(t, "Sale", body["offer_name"])
	assert.Equal(t, futureDate(30), body["expiration_date"])
	assert.NotEmpty(t, body["usage_date"])

	// a second redemption of the same code is refused
	w = f.do(t, http.MethodPost, "/v1/vouchers/validate", gin.H{
		"code":  code,
		"email": "a@x.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Voucher code has already been used", decode(t, w)["message"])
}

func TestValidateEndpoint_ExpiredImmediately(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t)

	w := f.do(t, http.MethodPost, "/v1/vouchers/generate", gin.H{
		"email":           "a@x.com",
		"special_offer":   "Sale",
		"expiration_date": futureDate(-1),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	code := decode(t, w)["code"].(string)

	w = f.do(t, http.MethodPost, "/v1/vouchers/validate", gin.H{
		"code":  code,
		"email": "a@x.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Voucher code has expired", decode(t, w)["message"])
}

func TestValidateEndpoint_UnknownCode(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t)

	w := f.do(t, http.MethodPost, "/v1/vouchers/validate", gin.H{
		"code":  "NOPE1234",
		"email": "a@x.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid voucher code", decode(t, w)["message"])
}

func TestListValidEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t)

	w := f.do(t, http.MethodPost, "/v1/vouchers/generate", gin.H{
		"email":           "a@x.com",
		"special_offer":   "Sale",
		"expiration_date": futureDate(30),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	code := decode(t, w)["code"].(string)

	w = f.do(t, http.MethodGet, "/v1/vouchers/valid?email=a@x.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	vouchers, ok := body["vouchers"].([]any)
	require.True(t, ok)
	require.Len(t, vouchers, 1)
	assert.Equal(t, code+" - Sale", vouchers[0])
}

func TestListValidEndpoint_MissingEmail(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/v1/vouchers/valid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateDiscountEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	offer := f.seed(t)

	w := f.do(t, http.MethodPut, fmt.Sprintf("/v1/offers/%s/discount", offer.ID), gin.H{
		"discount_percentage": 35.0,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 35.0, body["discount_percentage"])
	assert.Equal(t, "Sale", body["name"])
}

func TestUpdateDiscountEndpoint_BadID(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPut, "/v1/offers/not-a-uuid/discount", gin.H{
		"discount_percentage": 35.0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.seed(t)

	w := f.do(t, http.MethodPost, "/v1/vouchers/generate", gin.H{
		"email":           "a@x.com",
		"special_offer":   "Sale",
		"expiration_date": futureDate(30),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	code := decode(t, w)["code"].(string)

	w = f.do(t, http.MethodPost, "/v1/vouchers/validate", gin.H{"code": code, "email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/v1/vouchers/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 1.0, body["total_vouchers"])
	assert.Equal(t, 1.0, body["used_vouchers"])
	assert.Equal(t, 0.0, body["unused_vouchers"])
	assert.Equal(t, 100.0, body["usage_percentage"])
}
