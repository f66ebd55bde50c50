package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppointmentRouter() *gin.Engine {
	h := NewAppointmentHandler()
	r := gin.New()
	r.POST("/appointments", h.Create)
	r.PUT("/appointments/:id", h.Update)
	return r
}

func TestAppointmentHandler_Create(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	r := newAppointmentRouter()

	body, _ := json.Marshal(gin.H{
		"title":      "Meeting klien",
		"start_date": "2024-07-20 10:00:00",
		"end_date":   "2024-07-20 11:00:00",
		"category":   "meeting",
	})
	req := httptest.NewRequest("POST", "/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data models.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// 未传状态时默认 planned
	assert.Equal(t, models.AppointmentStatusPlanned, resp.Data.Status)
}

func TestAppointmentHandler_CreateEndBeforeStart(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	r := newAppointmentRouter()

	body, _ := json.Marshal(gin.H{
		"title":      "Meeting klien",
		"start_date": "2024-07-20 11:00:00",
		"end_date":   "2024-07-20 10:00:00",
		"category":   "meeting",
	})
	req := httptest.NewRequest("POST", "/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestAppointmentHandler_CreateUnknownEmployee(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	r := newAppointmentRouter()

	assigned := uint(42)
	body, _ := json.Marshal(gin.H{
		"title":       "Meeting klien",
		"start_date":  "2024-07-20 10:00:00",
		"end_date":    "2024-07-20 11:00:00",
		"category":    "meeting",
		"assigned_to": assigned,
	})
	req := httptest.NewRequest("POST", "/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}

func TestAppointmentHandler_UpdateRevalidatesInterval(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()
	r := newAppointmentRouter()

	app := models.Appointment{
		Title:     "Meeting klien",
		StartDate: day(2024, 7, 20),
		EndDate:   day(2024, 7, 21),
		Category:  models.AppointmentCategoryMeeting,
		Status:    models.AppointmentStatusPlanned,
	}
	require.NoError(t, database.DB.Create(&app).Error)

	// 只改结束时间也要和现有开始时间一起校验
	body, _ := json.Marshal(gin.H{"end_date": "2024-07-19 09:00:00"})
	req := httptest.NewRequest("PUT", fmt.Sprintf("/appointments/%d", app.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)

	var kept models.Appointment
	require.NoError(t, database.DB.First(&kept, app.ID).Error)
	assert.Equal(t, day(2024, 7, 21), kept.EndDate)
}
