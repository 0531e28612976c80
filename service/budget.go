package service

import (
	"time"

	"github.com/bagy391/budget-tracker/models"
)

// BudgetStats 预算统计结果
type BudgetStats struct {
	Total       float64 `json:"total"`         // 预算总额
	Spent       float64 `json:"spent"`         // 周期内已花费
	Remaining   float64 `json:"remaining"`     // 剩余可用，不为负
	Percentage  float64 `json:"percentage"`    // 已用百分比，封顶 100
	SafeToSpend float64 `json:"safe_to_spend"` // 剩余天数内每日可安全花费
	DaysLeft    int     `json:"days_left"`     // 剩余天数，含今天
}

// CalculateBudgetStats 计算预算统计。
// budget 为 nil 时返回全零结果；花费只统计落在预算区间内（含两端）的消费。
// 分母为零的除法一律返回 0，不产生 NaN/Inf。
func CalculateBudgetStats(budget *models.Budget, expenses []models.Expense, now time.Time) BudgetStats {
	if budget == nil {
		return BudgetStats{}
	}

	var spent float64
	for _, e := range expenses {
		if budget.Contains(e.TransactionDate) {
			spent += e.Amount
		}
	}

	total := budget.Amount
	remaining := total - spent
	if remaining < 0 {
		remaining = 0
	}

	var percentage float64
	if total > 0 {
		percentage = spent / total * 100
		if percentage > 100 {
			percentage = 100
		}
	}

	// 剩余天数按自然日计算，含今天；周期已结束则为 0
	daysLeft := daysBetween(now, budget.EndDate) + 1
	if daysLeft < 0 {
		daysLeft = 0
	}

	var safeToSpend float64
	if daysLeft > 0 {
		safeToSpend = remaining / float64(daysLeft)
	}

	return BudgetStats{
		Total:       total,
		Spent:       spent,
		Remaining:   remaining,
		Percentage:  percentage,
		SafeToSpend: safeToSpend,
		DaysLeft:    daysLeft,
	}
}

// CurrentBudget 选出包含 now 的预算。多条区间重叠时取 created_at 最新的一条
// （相同则取 id 较大者），避免依赖查询返回顺序。
func CurrentBudget(budgets []models.Budget, now time.Time) *models.Budget {
	var current *models.Budget
	for i := range budgets {
		b := &budgets[i]
		if !b.Contains(now) {
			continue
		}
		if current == nil ||
			b.CreatedAt.After(current.CreatedAt) ||
			(b.CreatedAt.Equal(current.CreatedAt) && b.ID > current.ID) {
			current = b
		}
	}
	return current
}

// 预算健康度分档
const (
	BudgetHealthGood    = "good"
	BudgetHealthWarning = "warning"
	BudgetHealthDanger  = "danger"
)

// BudgetHealth 按已用百分比分档：<50 good，<80 warning，其余 danger
func BudgetHealth(percentage float64) string {
	if percentage < 50 {
		return BudgetHealthGood
	}
	if percentage < 80 {
		return BudgetHealthWarning
	}
	return BudgetHealthDanger
}

// daysBetween 计算两个时间点的自然日差（仅比较日期，忽略时分秒）
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
