package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"erp/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCustomerAnalytics_FirstSeen(t *testing.T) {
	now := time.Date(2024, 7, 22, 12, 0, 0, 0, time.Local)

	cust := models.Customer{Name: "Client A", Category: models.CustomerCategoryPerusahaan, Type: models.CustomerTypeB2B}
	cust.ID = 1

	revenues := []models.Revenue{
		{Date: day(2024, 7, 10), Amount: 100, Customer: "Client A"},
		{Date: day(2024, 3, 5), Amount: 200, Customer: "Client A"},
		{Date: day(2024, 6, 1), Amount: 300, Customer: "Client A"},
	}
	got := computeCustomerAnalytics([]models.Customer{cust}, revenues, now)

	require.Len(t, got.Customers, 1)
	stats := got.Customers[0]
	// first_seen 取三条记录中最早的日期
	require.NotNil(t, stats.FirstSeen)
	assert.Equal(t, day(2024, 3, 5), *stats.FirstSeen)
	assert.Equal(t, 600.0, stats.RevenueTotal)
	assert.Equal(t, 3, stats.RevenueCount)
	assert.True(t, stats.Active) // 7月10日在30天窗口内

	// first_seen 在3月，不算本月新增
	assert.Equal(t, 0, got.NewThisMonth)
}

func TestComputeCustomerAnalytics_NewThisMonth(t *testing.T) {
	now := time.Date(2024, 7, 22, 12, 0, 0, 0, time.Local)

	fresh := models.Customer{Name: "Client Baru", Category: models.CustomerCategoryPerorangan, Type: models.CustomerTypeB2C}
	fresh.ID = 1
	old := models.Customer{Name: "Client Lama", Category: models.CustomerCategoryVIP, Type: models.CustomerTypeB2B}
	old.ID = 2
	silent := models.Customer{Name: "Client Diam", Category: models.CustomerCategoryMitra, Type: models.CustomerTypeReseller}
	silent.ID = 3

	revenues := []models.Revenue{
		{Date: day(2024, 7, 5), Amount: 100, Customer: "Client Baru"},
		{Date: day(2024, 1, 15), Amount: 500, Customer: "Client Lama"},
		{Date: day(2024, 7, 10), Amount: 200, Customer: "Client Lama"},
	}
	got := computeCustomerAnalytics([]models.Customer{fresh, old, silent}, revenues, now)

	// 只有首次成交落在当月的客户计入新增
	assert.Equal(t, 1, got.NewThisMonth)
	assert.Equal(t, 2, got.ActiveLast30Days)
	assert.Equal(t, 3, got.TotalCustomers)
	assert.Equal(t, 1, got.ByCategory[models.CustomerCategoryPerorangan])
	assert.Equal(t, 1, got.ByCategory[models.CustomerCategoryVIP])
	assert.Equal(t, 1, got.ByCategory[models.CustomerCategoryMitra])
}

func TestRevenueBelongsTo(t *testing.T) {
	cust := models.Customer{Name: "Client A"}
	cust.ID = 7

	// 有外键时按外键归属，名称不再参与
	id := uint(7)
	other := uint(8)
	assert.True(t, revenueBelongsTo(models.Revenue{CustomerID: &id, Customer: "Renamed"}, cust))
	assert.False(t, revenueBelongsTo(models.Revenue{CustomerID: &other, Customer: "Client A"}, cust))

	// 无外键的历史记录退回名称精确匹配
	assert.True(t, revenueBelongsTo(models.Revenue{Customer: "Client A"}, cust))
	assert.False(t, revenueBelongsTo(models.Revenue{Customer: "client a"}, cust))
}

func TestCustomerHandler_CreateInvalidCategory(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	h := NewCustomerHandler()
	r := gin.New()
	r.POST("/customers", h.Create)

	body, _ := json.Marshal(gin.H{
		"name":     "Client X",
		"category": "Unknown",
		"type":     "B2B",
	})
	req := httptest.NewRequest("POST", "/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}
