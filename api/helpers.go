package api

import (
	"time"
)

// 接口统一使用的时间格式
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// parseDateRange 解析日期范围，结束日期取当天最后一秒
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	startTime, err := time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endTime, err := time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endTime = endTime.Add(24*time.Hour - time.Second)
	return startTime, endTime, nil
}

// parsePage 规范分页参数
func parsePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// startOfDay 归一化到当天零点
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// endOfDay 归一化到当天最后一纳秒
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
