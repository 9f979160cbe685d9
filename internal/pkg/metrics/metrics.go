package metrics

import "math"

// 纯函数指标计算。所有除法都有显式零值保护，
// 任何输入都不会产出 NaN / Inf

// EngagementRate 互动率 = (likes+comments+shares)/impressions*100
func EngagementRate(likes, comments, shares, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return float64(likes+comments+shares) / float64(impressions) * 100
}

// ClickThroughRate 点击率 = clicks/impressions*100
func ClickThroughRate(clicks, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return float64(clicks) / float64(impressions) * 100
}

// PercentageShare 占比 = part/whole*100
func PercentageShare(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// PercentChange 环比变化率。三分支写法在所有周期对比处必须统一使用：
// prev==0 && curr==0 -> 0；prev==0 && curr>0 -> 100；否则 (curr-prev)/prev*100
func PercentChange(curr, prev float64) float64 {
	if prev == 0 {
		if curr == 0 {
			return 0
		}
		return 100
	}
	return (curr - prev) / prev * 100
}

// Round2 保留两位小数。原始计数保持整数，不做舍入
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 保留四位小数，用于比值口径（非百分比）的互动率
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
