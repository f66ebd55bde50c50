package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"erp/config"
	"erp/models"
)

const (
	defaultCalendarBaseURL = "https://www.googleapis.com/calendar/v3"
	holidayCacheTTL        = 24 * time.Hour
	holidayPlaceholderKey  = "YOUR_API_KEY_HERE"
)

// calendarEventTime Google Calendar 事件时间
// 全天事件只有 date，定时事件只有 dateTime
type calendarEventTime struct {
	Date     string `json:"date"`
	DateTime string `json:"dateTime"`
}

// calendarEventItem Google Calendar 事件条目
type calendarEventItem struct {
	ID      string            `json:"id"`
	Summary string            `json:"summary"`
	Start   calendarEventTime `json:"start"`
	End     calendarEventTime `json:"end"`
}

// calendarEventsResponse Google Calendar events 接口响应
type calendarEventsResponse struct {
	Items []calendarEventItem `json:"items"`
}

type holidayCacheEntry struct {
	holidays  []models.Holiday
	fetchedAt time.Time
}

// HolidayClient 法定节假日客户端
// 外部接口的任何失败（密钥缺失、非 2xx、网络异常、响应不可解析）
// 都降级为返回空列表并打日志，不向调用方抛错
type HolidayClient struct {
	apiKey     string
	calendarID string
	baseURL    string
	client     *http.Client

	mu    sync.Mutex
	cache map[string]holidayCacheEntry
}

// NewHolidayClient 创建节假日客户端
func NewHolidayClient(cfg config.HolidayConfig) *HolidayClient {
	return &HolidayClient{
		apiKey:     cfg.APIKey,
		calendarID: cfg.CalendarID,
		baseURL:    defaultCalendarBaseURL,
		client:     &http.Client{Timeout: 15 * time.Second},
		cache:      make(map[string]holidayCacheEntry),
	}
}

// Fetch 获取窗口内的法定节假日，结果按窗口缓存一天
func (h *HolidayClient) Fetch(timeMin, timeMax time.Time) []models.Holiday {
	if h.apiKey == "" || h.apiKey == holidayPlaceholderKey {
		log.Println("警告: 节假日日历 API 密钥未配置，节假日不展示")
		return []models.Holiday{}
	}

	cacheKey := timeMin.Format("2006-01-02") + "/" + timeMax.Format("2006-01-02")
	h.mu.Lock()
	if entry, ok := h.cache[cacheKey]; ok && time.Since(entry.fetchedAt) < holidayCacheTTL {
		h.mu.Unlock()
		return entry.holidays
	}
	h.mu.Unlock()

	holidays := h.fetch(timeMin, timeMax)
	if holidays == nil {
		// 失败不缓存，下次仍尝试
		return []models.Holiday{}
	}

	h.mu.Lock()
	h.cache[cacheKey] = holidayCacheEntry{holidays: holidays, fetchedAt: time.Now()}
	h.mu.Unlock()
	return holidays
}

// fetch 实际请求外部日历接口；失败返回 nil
func (h *HolidayClient) fetch(timeMin, timeMax time.Time) []models.Holiday {
	reqURL := fmt.Sprintf("%s/calendars/%s/events?key=%s&timeMin=%s&timeMax=%s&singleEvents=true&orderBy=startTime",
		h.baseURL,
		url.PathEscape(h.calendarID),
		url.QueryEscape(h.apiKey),
		url.QueryEscape(timeMin.Format(time.RFC3339)),
		url.QueryEscape(timeMax.Format(time.RFC3339)),
	)

	resp, err := h.client.Get(reqURL)
	if err != nil {
		log.Printf("警告: 请求节假日日历失败: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("警告: 节假日日历返回错误: %d, %s", resp.StatusCode, string(body))
		return nil
	}

	var data calendarEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("警告: 解析节假日日历响应失败: %v", err)
		return nil
	}

	holidays := make([]models.Holiday, 0, len(data.Items))
	for _, item := range data.Items {
		start, allDay, err := parseCalendarTime(item.Start)
		if err != nil {
			continue
		}
		end, _, err := parseCalendarTime(item.End)
		if err != nil {
			continue
		}
		// 全天事件的结束日期是开区间，回退一天变成闭区间
		if allDay {
			end = end.AddDate(0, 0, -1)
		}
		holidays = append(holidays, models.Holiday{
			ID:        "holiday-" + item.ID,
			StartDate: start,
			EndDate:   end,
			Title:     item.Summary,
			Type:      "holiday",
		})
	}
	return holidays
}

// parseCalendarTime 解析事件时间，返回时间与是否为全天事件
func parseCalendarTime(t calendarEventTime) (time.Time, bool, error) {
	if t.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", t.Date, time.Local)
		return parsed, true, err
	}
	parsed, err := time.Parse(time.RFC3339, t.DateTime)
	return parsed, false, err
}
