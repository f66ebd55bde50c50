package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRevenueRouter() *gin.Engine {
	h := NewRevenueHandler()
	r := gin.New()
	r.POST("/revenues", h.Create)
	r.GET("/revenues", h.List)
	r.GET("/revenues/:id", h.Get)
	r.PUT("/revenues/:id", h.Update)
	r.DELETE("/revenues/:id", h.Delete)
	return r
}

func TestRevenueHandler_CreateThenGet(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	r := newRevenueRouter()

	body, _ := json.Marshal(gin.H{
		"date":        "2024-11-15",
		"amount":      1200.00,
		"customer":    "Client A",
		"description": "Web Design Project",
	})
	req := httptest.NewRequest("POST", "/revenues", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Code int            `json:"code"`
		Data models.Revenue `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 200, resp.Code)
	require.NotZero(t, resp.Data.ID)

	// 按返回ID查询应取回字段一致的记录
	req = httptest.NewRequest("GET", fmt.Sprintf("/revenues/%d", resp.Data.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var got struct {
		Data models.Revenue `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, resp.Data.ID, got.Data.ID)
	assert.Equal(t, "Client A", got.Data.Customer)
	assert.Equal(t, 1200.00, got.Data.Amount)
	assert.Equal(t, "Web Design Project", got.Data.Description)
	assert.Equal(t, "2024-11-15", got.Data.Date.Format("2006-01-02"))
}

func TestRevenueHandler_UpdateTouchesOnlyTarget(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	r := newRevenueRouter()

	seed := []models.Revenue{
		{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), Amount: 100, Customer: "Client A"},
		{Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local), Amount: 200, Customer: "Client B"},
		{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.Local), Amount: 300, Customer: "Client C"},
	}
	for i := range seed {
		require.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	body, _ := json.Marshal(gin.H{"amount": 250.0})
	req := httptest.NewRequest("PUT", fmt.Sprintf("/revenues/%d", seed[1].ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var all []models.Revenue
	require.NoError(t, database.DB.Order("id").Find(&all).Error)
	require.Len(t, all, 3)
	assert.Equal(t, 100.0, all[0].Amount)
	assert.Equal(t, "Client A", all[0].Customer)
	assert.Equal(t, 250.0, all[1].Amount)
	assert.Equal(t, "Client B", all[1].Customer) // 未传字段保持不变
	assert.Equal(t, 300.0, all[2].Amount)
}

func TestRevenueHandler_DeleteRemovesExactlyOne(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	r := newRevenueRouter()

	seed := []models.Revenue{
		{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), Amount: 100, Customer: "Client A"},
		{Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local), Amount: 200, Customer: "Client B"},
		{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.Local), Amount: 300, Customer: "Client C"},
	}
	for i := range seed {
		require.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/revenues/%d", seed[1].ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var all []models.Revenue
	require.NoError(t, database.DB.Order("id").Find(&all).Error)
	require.Len(t, all, 2)
	assert.Equal(t, seed[0].ID, all[0].ID)
	assert.Equal(t, seed[2].ID, all[1].ID)

	// 删除不存在的ID返回404，数据不变
	req = httptest.NewRequest("DELETE", "/revenues/9999", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)

	require.NoError(t, database.DB.Find(&all).Error)
	assert.Len(t, all, 2)
}

func TestRevenueHandler_CreateUnknownCustomer(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	r := newRevenueRouter()

	customerID := uint(42)
	body, _ := json.Marshal(gin.H{
		"date":        "2024-11-15",
		"amount":      100.0,
		"customer":    "Ghost",
		"customer_id": customerID,
	})
	req := httptest.NewRequest("POST", "/revenues", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}

func TestRevenueHandler_ListDateRangeFilter(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	r := newRevenueRouter()

	dates := []string{"2024-05-31", "2024-06-15", "2024-07-01"}
	for i, d := range dates {
		day, err := time.ParseInLocation("2006-01-02", d, time.Local)
		require.NoError(t, err)
		require.NoError(t, database.DB.Create(&models.Revenue{
			Date: day, Amount: float64(100 * (i + 1)), Customer: "Client A",
		}).Error)
	}

	req := httptest.NewRequest("GET", "/revenues?start_time=2024-06-01&end_time=2024-06-30", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data struct {
			Total int64            `json:"total"`
			List  []models.Revenue `json:"list"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 1, resp.Data.Total)
	assert.Equal(t, 200.0, resp.Data.List[0].Amount)
}
