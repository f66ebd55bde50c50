package api

import (
	"fmt"
	"sort"
	"time"

	"erp/database"
	"erp/models"
	"erp/service"

	"github.com/gin-gonic/gin"
)

// CalendarHandler 日历处理器
// 把日程与带截止日期的任务合并成统一的日历事件，并按天分组
type CalendarHandler struct {
	holidays *service.HolidayClient
}

func NewCalendarHandler(holidays *service.HolidayClient) *CalendarHandler {
	return &CalendarHandler{holidays: holidays}
}

// CalendarEvent 统一的日历事件
type CalendarEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // appointment | task
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Category  string    `json:"category,omitempty"`
	Status    string    `json:"status,omitempty"`
	Priority  string    `json:"priority,omitempty"`
}

// CalendarEventsResponse 日历事件返回
type CalendarEventsResponse struct {
	Events []CalendarEvent            `json:"events"`
	Days   map[string][]CalendarEvent `json:"days"`
}

// 事件类型常量
const (
	calendarEventAppointment = "appointment"
	calendarEventTask        = "task"
)

// mergeCalendarEvents 合并日程与任务为日历事件
// 任务没有截止日期则不上日历；缺开始日期时以截止日期代替
func mergeCalendarEvents(appointments []models.Appointment, tasks []models.Task) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(appointments)+len(tasks))
	for _, app := range appointments {
		events = append(events, CalendarEvent{
			ID:        fmt.Sprintf("appointment-%d", app.ID),
			Type:      calendarEventAppointment,
			Title:     app.Title,
			StartDate: app.StartDate,
			EndDate:   app.EndDate,
			Category:  app.Category,
			Status:    app.Status,
		})
	}
	for _, task := range tasks {
		if task.EndDate == nil {
			continue
		}
		start := task.StartDate
		if start == nil {
			start = task.EndDate
		}
		events = append(events, CalendarEvent{
			ID:        fmt.Sprintf("task-%d", task.ID),
			Type:      calendarEventTask,
			Title:     task.Title,
			StartDate: *start,
			EndDate:   *task.EndDate,
			Priority:  task.Priority,
		})
	}
	return events
}

// eventInWindow 判断事件与查询窗口是否相交
// 双方都归一化到整天边界后做闭区间相交判断
func eventInWindow(ev CalendarEvent, winStart, winEnd time.Time) bool {
	evStart := startOfDay(ev.StartDate)
	evEnd := endOfDay(ev.EndDate)
	ws := startOfDay(winStart)
	we := endOfDay(winEnd)
	return !evStart.After(we) && !evEnd.Before(ws)
}

// groupEventsByDay 按天分组
// 事件跨几天就出现在几个键下；同一事件在同一天只出现一次
func groupEventsByDay(events []CalendarEvent) map[string][]CalendarEvent {
	days := make(map[string][]CalendarEvent)
	for _, ev := range events {
		seen := make(map[string]bool)
		last := startOfDay(ev.EndDate)
		for d := startOfDay(ev.StartDate); !d.After(last); d = d.AddDate(0, 0, 1) {
			key := d.Format(dateLayout)
			if seen[key] {
				continue
			}
			seen[key] = true
			dup := false
			for _, existing := range days[key] {
				if existing.ID == ev.ID {
					dup = true
					break
				}
			}
			if !dup {
				days[key] = append(days[key], ev)
			}
		}
	}
	return days
}

// Events 获取日历事件
// @Summary 获取日历事件
// @Description 合并日程与带截止日期的任务，按日期窗口（闭区间、整天粒度）过滤并按天分组返回
// @Tags 日历
// @Produce json
// @Param start query string true "窗口开始日期 (2024-07-01)"
// @Param end query string true "窗口结束日期 (2024-07-31)"
// @Param category query string false "日程类别筛选（仅作用于日程）"
// @Param status query string false "日程状态筛选（仅作用于日程）"
// @Success 200 {object} Response{data=CalendarEventsResponse} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/calendar/events [get]
func (h *CalendarHandler) Events(c *gin.Context) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供窗口开始和结束日期")
		return
	}
	winStart, winEnd, err := parseDateRange(startStr, endStr)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}
	if winEnd.Before(winStart) {
		BadRequest(c, "结束日期不能早于开始日期")
		return
	}

	appQuery := database.DB.Model(&models.Appointment{})
	if category := c.Query("category"); category != "" {
		appQuery = appQuery.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		appQuery = appQuery.Where("status = ?", status)
	}
	var appointments []models.Appointment
	if err := appQuery.Order("start_date").Find(&appointments).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询日程失败"))
		return
	}
	var tasks []models.Task
	if err := database.DB.Order("position").Find(&tasks).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询任务失败"))
		return
	}

	merged := mergeCalendarEvents(appointments, tasks)
	events := make([]CalendarEvent, 0, len(merged))
	for _, ev := range merged {
		if eventInWindow(ev, winStart, winEnd) {
			events = append(events, ev)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate.Before(events[j].StartDate)
	})

	Success(c, CalendarEventsResponse{
		Events: events,
		Days:   groupEventsByDay(events),
	})
}

// Holidays 获取法定节假日
// @Summary 获取法定节假日
// @Description 代理外部日历接口返回窗口内的法定节假日；密钥缺失或外部失败时返回空列表而非错误
// @Tags 日历
// @Produce json
// @Param start query string true "窗口开始日期 (2024-01-01)"
// @Param end query string true "窗口结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=[]models.Holiday} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/calendar/holidays [get]
func (h *CalendarHandler) Holidays(c *gin.Context) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供窗口开始和结束日期")
		return
	}
	winStart, winEnd, err := parseDateRange(startStr, endStr)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}
	Success(c, h.holidays.Fetch(winStart, winEnd))
}
