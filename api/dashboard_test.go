package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_Summary(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	require.NoError(t, database.DB.Create(&models.Revenue{Date: now, Amount: 1000, Customer: "Client A"}).Error)
	require.NoError(t, database.DB.Create(&models.Revenue{Date: now, Amount: 500, Customer: "Client B"}).Error)
	require.NoError(t, database.DB.Create(&models.Expense{Date: now, Amount: 300, Vendor: "Software Inc."}).Error)
	require.NoError(t, database.DB.Create(&models.Product{Name: "Laptop", Price: 1500, Quantity: 5}).Error)
	require.NoError(t, database.DB.Create(&models.Product{Name: "Mouse", Price: 20, Quantity: 50}).Error)

	h := NewDashboardHandler()
	r := gin.New()
	r.GET("/dashboard/summary", h.Summary)

	req := httptest.NewRequest("GET", "/dashboard/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data DashboardSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1500.0, resp.Data.RevenueTotal)
	assert.Equal(t, 300.0, resp.Data.ExpenseTotal)
	assert.Equal(t, 1200.0, resp.Data.Profit)
	assert.EqualValues(t, 2, resp.Data.ProductCount)
	assert.EqualValues(t, 1, resp.Data.LowStockCount)

	// 近6个月序列，当月在末位且含本次写入
	require.Len(t, resp.Data.Monthly, 6)
	last := resp.Data.Monthly[5]
	assert.Equal(t, now.Format("2006-01"), last.Month)
	assert.Equal(t, 1500.0, last.Revenue)
	assert.Equal(t, 300.0, last.Expense)

	require.NotEmpty(t, resp.Data.TopCustomers)
	assert.Equal(t, "Client A", resp.Data.TopCustomers[0].Customer)
	assert.Equal(t, 1000.0, resp.Data.TopCustomers[0].Total)
}

func TestDashboardHandler_SummaryEmpty(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	h := NewDashboardHandler()
	r := gin.New()
	r.GET("/dashboard/summary", h.Summary)

	req := httptest.NewRequest("GET", "/dashboard/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data DashboardSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Data.RevenueTotal)
	assert.Zero(t, resp.Data.Profit)
	assert.Len(t, resp.Data.Monthly, 6)
}
