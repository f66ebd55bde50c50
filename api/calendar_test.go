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

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestEventInWindow(t *testing.T) {
	ev := CalendarEvent{
		StartDate: day(2024, 7, 20),
		EndDate:   day(2024, 7, 24),
	}

	// 单日窗口落在跨度内
	assert.True(t, eventInWindow(ev, day(2024, 7, 22), day(2024, 7, 22)))
	// 边界日也算
	assert.True(t, eventInWindow(ev, day(2024, 7, 24), day(2024, 7, 24)))
	// 窗口完全在跨度之后
	assert.False(t, eventInWindow(ev, day(2024, 7, 25), day(2024, 7, 26)))
	// 窗口完全在跨度之前
	assert.False(t, eventInWindow(ev, day(2024, 7, 18), day(2024, 7, 19)))
}

func TestGroupEventsByDay(t *testing.T) {
	ev := CalendarEvent{
		ID:        "appointment-1",
		StartDate: day(2024, 7, 20),
		EndDate:   day(2024, 7, 22),
	}
	days := groupEventsByDay([]CalendarEvent{ev})

	// 跨3天出现在恰好3个键下
	require.Len(t, days, 3)
	for _, key := range []string{"2024-07-20", "2024-07-21", "2024-07-22"} {
		require.Len(t, days[key], 1, "缺少 %s", key)
		assert.Equal(t, "appointment-1", days[key][0].ID)
	}
}

func TestMergeCalendarEvents(t *testing.T) {
	app := models.Appointment{
		Title:     "Meeting klien",
		StartDate: day(2024, 7, 20),
		EndDate:   day(2024, 7, 21),
		Category:  "meeting",
		Status:    "planned",
	}
	app.ID = 1

	end := day(2024, 7, 24)
	withEnd := models.Task{Title: "Desain", ColumnID: "todo", EndDate: &end}
	withEnd.ID = 2
	noEnd := models.Task{Title: "Riset", ColumnID: "todo"}
	noEnd.ID = 3

	events := mergeCalendarEvents([]models.Appointment{app}, []models.Task{withEnd, noEnd})

	// 无截止日期的任务不上日历
	require.Len(t, events, 2)
	assert.Equal(t, "appointment-1", events[0].ID)
	assert.Equal(t, "task-2", events[1].ID)
	// 任务缺开始日期时以截止日期代替
	assert.Equal(t, end, events[1].StartDate)
	assert.Equal(t, end, events[1].EndDate)
}

func TestCalendarHandler_Events(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	app := models.Appointment{
		Title:     "Meeting klien",
		StartDate: day(2024, 7, 20),
		EndDate:   day(2024, 7, 24),
		Category:  "meeting",
		Status:    "planned",
	}
	require.NoError(t, database.DB.Create(&app).Error)

	h := NewCalendarHandler(nil)
	r := gin.New()
	r.GET("/calendar/events", h.Events)

	// 单日窗口命中跨天日程
	req := httptest.NewRequest("GET", "/calendar/events?start=2024-07-22&end=2024-07-22", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data CalendarEventsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Events, 1)
	assert.Contains(t, resp.Data.Days, "2024-07-22")

	// 窗口在日程之后则为空
	req = httptest.NewRequest("GET", "/calendar/events?start=2024-07-25&end=2024-07-26", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Events)

	// 缺参数返回400
	req = httptest.NewRequest("GET", "/calendar/events", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}
