package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"erp/config"
	"erp/database"
	"erp/models"
	"erp/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAIServer 返回固定聊天补全结果的假 AI 服务
func fakeAIServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := gin.H{
			"choices": []gin.H{
				{"message": gin.H{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newInsightRouter(baseURL string) *gin.Engine {
	client := service.NewInsightClient(config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gpt-test",
		Timeout: 5 * time.Second,
	})
	h := NewInsightHandler(client)
	r := gin.New()
	r.POST("/insights", h.Generate)
	r.GET("/insights/history", h.History)
	r.DELETE("/insights/history/:id", h.DeleteHistory)
	return r
}

func TestInsightHandler_Generate(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	srv := fakeAIServer(t, `{"insights":"营收集中在单一客户","recommendations":"拓展客户来源"}`, http.StatusOK)
	defer srv.Close()
	r := newInsightRouter(srv.URL)

	require.NoError(t, database.DB.Create(&models.Revenue{
		Date: day(2024, 1, 15), Amount: 1200, Customer: "Client A",
	}).Error)

	req := httptest.NewRequest("POST", "/insights", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data models.InsightReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "营收集中在单一客户", resp.Data.Insights)
	assert.Equal(t, "拓展客户来源", resp.Data.Recommendations)
	assert.Equal(t, 1200.0, resp.Data.RevenueTotal)

	// 结果已入库
	var count int64
	database.DB.Model(&models.InsightReport{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestInsightHandler_GenerateNoData(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	srv := fakeAIServer(t, "", http.StatusOK)
	defer srv.Close()
	r := newInsightRouter(srv.URL)

	req := httptest.NewRequest("POST", "/insights", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestInsightHandler_GenerateUpstreamFailure(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	srv := fakeAIServer(t, "", http.StatusInternalServerError)
	defer srv.Close()
	r := newInsightRouter(srv.URL)

	require.NoError(t, database.DB.Create(&models.Revenue{
		Date: day(2024, 1, 15), Amount: 1200, Customer: "Client A",
	}).Error)

	req := httptest.NewRequest("POST", "/insights", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 502, w.Code)

	// 失败不留历史
	var count int64
	database.DB.Model(&models.InsightReport{}).Count(&count)
	assert.Zero(t, count)
}

func TestInsightHandler_HistoryAndDelete(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	srv := fakeAIServer(t, "", http.StatusOK)
	defer srv.Close()
	r := newInsightRouter(srv.URL)

	report := models.InsightReport{Insights: "ok", Recommendations: "ok"}
	require.NoError(t, database.DB.Create(&report).Error)

	req := httptest.NewRequest("GET", "/insights/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/insights/history/%d", report.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var count int64
	database.DB.Model(&models.InsightReport{}).Count(&count)
	assert.Zero(t, count)

	// 再删同一条返回404
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/insights/history/%d", report.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}
