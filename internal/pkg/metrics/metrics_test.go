package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngagementRate(t *testing.T) {
	assert.Equal(t, 17.0, EngagementRate(10, 5, 2, 100))
	assert.Equal(t, 100.0, EngagementRate(50, 30, 20, 100))

	// impressions 为零或负数时不产生 NaN / Inf
	assert.Equal(t, 0.0, EngagementRate(10, 5, 2, 0))
	assert.Equal(t, 0.0, EngagementRate(10, 5, 2, -1))
}

func TestClickThroughRate(t *testing.T) {
	assert.Equal(t, 20.0, ClickThroughRate(20, 100))
	assert.Equal(t, 0.0, ClickThroughRate(0, 100))
	assert.Equal(t, 0.0, ClickThroughRate(20, 0))
}

func TestPercentageShare(t *testing.T) {
	assert.Equal(t, 50.0, PercentageShare(25, 50))
	assert.Equal(t, 100.0, PercentageShare(40, 40))
	assert.Equal(t, 0.0, PercentageShare(25, 0))
}

func TestPercentChange(t *testing.T) {
	// 三分支：双零、零基数、正常环比
	assert.Equal(t, 0.0, PercentChange(0, 0))
	assert.Equal(t, 100.0, PercentChange(5, 0))
	assert.Equal(t, 50.0, PercentChange(150, 100))
	assert.Equal(t, -50.0, PercentChange(50, 100))
	assert.Equal(t, -100.0, PercentChange(0, 100))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.14, Round2(3.14159))
	assert.Equal(t, 3.46, Round2(3.456))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -2.58, Round2(-2.576))
}

func TestRound4(t *testing.T) {
	assert.Equal(t, 0.1235, Round4(0.123456))
	assert.Equal(t, 1.0, Round4(1.00001))
}
