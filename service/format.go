package service

import (
	"math"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 金额展示用 en-IN 区域（卢比符号 + 印度分组）
var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatCurrency 按 en-IN 习惯渲染金额，保留两位小数
func FormatCurrency(amount float64) string {
	rounded := math.Round(amount*100) / 100
	return inrPrinter.Sprint(currency.Symbol(currency.INR.Amount(rounded)))
}

// DefaultDateLayout 默认日期展示格式
const DefaultDateLayout = "Jan 02, 2006"

// FormatDate 渲染日期，零值返回空串
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DefaultDateLayout)
}
