package util

import (
	"strconv"
	"strings"
	"time"
)

// ParsePeriodDays 解析 "30d" 形式的周期参数。
// 非法输入回退到默认值，最小为 1 天
func ParsePeriodDays(period string, defaultDays int) int {
	s := strings.TrimSuffix(strings.TrimSpace(period), "d")
	if s == "" {
		return defaultDays
	}
	days, err := strconv.Atoi(s)
	if err != nil || days < 1 {
		return defaultDays
	}
	return days
}

// GetMidnight 截断到当天 UTC 零点
func GetMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay 对齐到当天最后一毫秒
func EndOfDay(t time.Time) time.Time {
	return GetMidnight(t).Add(24*time.Hour - time.Millisecond)
}

// TruncateToHour 截断到整点
func TruncateToHour(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
}

// TruncateToWeek 截断到本周起点（周日 00:00 UTC）
func TruncateToWeek(t time.Time) time.Time {
	day := GetMidnight(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
