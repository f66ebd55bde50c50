package models

import "time"

// Holiday 法定节假日
// 来自外部日历接口，只读，不落库
type Holiday struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Title     string    `json:"title"`
	Type      string    `json:"type"` // 固定为 holiday
}
