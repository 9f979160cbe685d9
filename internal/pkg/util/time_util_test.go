package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriodDays(t *testing.T) {
	assert.Equal(t, 30, ParsePeriodDays("30d", 30))
	assert.Equal(t, 7, ParsePeriodDays("7d", 30))
	assert.Equal(t, 90, ParsePeriodDays(" 90d ", 30))

	// 非法或非正输入一律回退默认
	assert.Equal(t, 30, ParsePeriodDays("", 30))
	assert.Equal(t, 30, ParsePeriodDays("abc", 30))
	assert.Equal(t, 30, ParsePeriodDays("0d", 30))
	assert.Equal(t, 30, ParsePeriodDays("-3d", 30))
}

func TestGetMidnight(t *testing.T) {
	in := time.Date(2026, 8, 28, 15, 42, 7, 123, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), GetMidnight(in))

	// 非 UTC 输入先转 UTC 再截断
	cst := time.FixedZone("CST", 8*3600)
	assert.Equal(t,
		time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		GetMidnight(time.Date(2026, 8, 28, 1, 0, 0, 0, cst)))
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 28, 23, 59, 59, 999000000, time.UTC), EndOfDay(in))
}

func TestTruncateToHour(t *testing.T) {
	in := time.Date(2026, 8, 28, 15, 42, 7, 123, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC), TruncateToHour(in))
}

func TestTruncateToWeek(t *testing.T) {
	// 2026-08-28 是周五，本周起点为 08-23 周日
	friday := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	weekStart := TruncateToWeek(friday)
	assert.Equal(t, time.Sunday, weekStart.Weekday())
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), weekStart)

	// 周日当天截断到自身零点
	sunday := time.Date(2026, 8, 23, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), TruncateToWeek(sunday))
}
