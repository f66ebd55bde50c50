package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportRouter() *gin.Engine {
	h := NewExportHandler()
	r := gin.New()
	r.GET("/export/csv", h.ExportCSV)
	r.GET("/export/json", h.ExportJSON)
	r.GET("/export/excel", h.ExportExcel)
	return r
}

func seedExportData(t *testing.T) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.Revenue{
		Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), Amount: 1200, Customer: "Client A", Description: "Web Design",
	}).Error)
	require.NoError(t, database.DB.Create(&models.Expense{
		Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.Local), Amount: 300, Vendor: "Software Inc.",
	}).Error)
}

func TestExportHandler_ExportCSV(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedExportData(t)
	r := newExportRouter()

	req := httptest.NewRequest("GET", "/export/csv?type=revenue&start_time=2024-01-01&end_time=2024-01-31", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	// UTF-8 BOM 开头
	assert.True(t, strings.HasPrefix(w.Body.String(), "\xEF\xBB\xBF"))
	assert.Contains(t, w.Body.String(), "客户")
	assert.Contains(t, w.Body.String(), "Client A")
	assert.Contains(t, w.Body.String(), "1200.00")
}

func TestExportHandler_ExportCSV_ExpenseType(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedExportData(t)
	r := newExportRouter()

	req := httptest.NewRequest("GET", "/export/csv?type=expense&start_time=2024-01-01&end_time=2024-01-31", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "供应商")
	assert.Contains(t, w.Body.String(), "Software Inc.")
	assert.NotContains(t, w.Body.String(), "Client A")
}

func TestExportHandler_ExportCSV_MissingParams(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	r := newExportRouter()

	req := httptest.NewRequest("GET", "/export/csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)

	req = httptest.NewRequest("GET", "/export/csv?type=bogus&start_time=2024-01-01&end_time=2024-01-31", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestExportHandler_ExportJSON(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedExportData(t)
	r := newExportRouter()

	req := httptest.NewRequest("GET", "/export/json?type=revenue&start_time=2024-01-01&end_time=2024-01-31", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"total_count":1`)
	assert.Contains(t, w.Body.String(), `"total_amount":1200`)
}

func TestExportHandler_ExportExcel(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	seedExportData(t)
	r := newExportRouter()

	req := httptest.NewRequest("GET", "/export/excel?type=revenue&start_time=2024-01-01&end_time=2024-01-31", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}
