package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	got := FormatCurrency(1234.5)
	assert.Contains(t, got, "₹")
	assert.Contains(t, got, "234")

	// 四舍五入到两位小数
	assert.Equal(t, FormatCurrency(100.005), FormatCurrency(100.01))

	zero := FormatCurrency(0)
	assert.Contains(t, zero, "₹")
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 6, 5, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, "Jun 05, 2024", FormatDate(d))
	assert.Equal(t, "", FormatDate(time.Time{}))
}
