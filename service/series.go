package service

import (
	"sort"
	"time"

	"github.com/bagy391/budget-tracker/models"
)

// 仪表盘周期选项
const (
	PeriodMonth       = "month"
	PeriodThreeMonths = "3months"
	PeriodSixMonths   = "6months"
	PeriodYear        = "year"
)

// PeriodWindow 由周期选项计算统计窗口：起点为 N 个月前的月初，
// 终点为当前月最后一刻。未知选项按 3months 处理。
func PeriodWindow(period string, now time.Time) (time.Time, time.Time) {
	back := 2
	switch period {
	case PeriodMonth:
		back = 0
	case PeriodThreeMonths:
		back = 2
	case PeriodSixMonths:
		back = 5
	case PeriodYear:
		back = 11
	}
	start := monthStart(now, -back)
	end := monthStart(now, 1).Add(-time.Nanosecond)
	return start, end
}

// MonthPoint 一个自然月的聚合点。Expense/Income 分别是该月的支出、收入总额，
// Budget 是覆盖该月任意一天的预算额度（预算使用率 = Expense/Budget）。
type MonthPoint struct {
	Month   string  `json:"month"` // 形如 "Jun 2024"
	Expense float64 `json:"expense"`
	Income  float64 `json:"income"`
	Budget  float64 `json:"budget"`
}

// BuildMonthlySeries 把支出/收入按自然月分桶，窗口内每个月必出一个桶，
// 没有交易的月份各项为 0。入参是全量列表，按月过滤在此内部完成。
func BuildMonthlySeries(expenses []models.Expense, incomes []models.Income, budgets []models.Budget, start, end time.Time) []MonthPoint {
	var points []MonthPoint
	for ms := monthStart(start, 0); !ms.After(end); ms = ms.AddDate(0, 1, 0) {
		me := ms.AddDate(0, 1, 0).Add(-time.Nanosecond)

		p := MonthPoint{Month: ms.Format("Jan 2006")}
		for _, e := range expenses {
			if inRange(e.TransactionDate, ms, me) {
				p.Expense += e.Amount
			}
		}
		for _, in := range incomes {
			if inRange(in.Date, ms, me) {
				p.Income += in.Amount
			}
		}
		if b := budgetForMonth(budgets, ms, me); b != nil {
			p.Budget = b.Amount
		}
		points = append(points, p)
	}
	return points
}

// budgetForMonth 选出与该月有任意一天重叠的预算，
// 重叠多条时与 CurrentBudget 同样的裁决：created_at 最新者胜
func budgetForMonth(budgets []models.Budget, monthStart, monthEnd time.Time) *models.Budget {
	var match *models.Budget
	for i := range budgets {
		b := &budgets[i]
		if b.StartDate.After(monthEnd) || b.EndDate.Before(monthStart) {
			continue
		}
		if match == nil ||
			b.CreatedAt.After(match.CreatedAt) ||
			(b.CreatedAt.Equal(match.CreatedAt) && b.ID > match.ID) {
			match = b
		}
	}
	return match
}

// FilterExpensesByRange 过滤出窗口内的消费记录（含两端）
func FilterExpensesByRange(expenses []models.Expense, start, end time.Time) []models.Expense {
	var out []models.Expense
	for _, e := range expenses {
		if inRange(e.TransactionDate, start, end) {
			out = append(out, e)
		}
	}
	return out
}

// FilterIncomesByRange 过滤出窗口内的收入记录（含两端）
func FilterIncomesByRange(incomes []models.Income, start, end time.Time) []models.Income {
	var out []models.Income
	for _, in := range incomes {
		if inRange(in.Date, start, end) {
			out = append(out, in)
		}
	}
	return out
}

// PaymentSlice 按支付方式汇总的一片
type PaymentSlice struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// GroupByPaymentMethod 按支付方式名称汇总消费总额。
// 支付方式已删除（关联为空）的记录不计入任何分片。
// 结果按总额降序，相同总额保持首次出现的顺序。
func GroupByPaymentMethod(expenses []models.Expense) []PaymentSlice {
	byName := make(map[string]*PaymentSlice)
	var order []string

	for _, e := range expenses {
		if e.PaymentMethod == nil {
			continue
		}
		name := e.PaymentMethod.Name
		s, ok := byName[name]
		if !ok {
			s = &PaymentSlice{Name: name}
			byName[name] = s
			order = append(order, name)
		}
		s.Total += e.Amount
		s.Count++
	}

	result := make([]PaymentSlice, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})
	return result
}

// chartColors 图表调色板，与前端保持一致
var chartColors = []string{
	"#6366f1", // primary
	"#a855f7", // secondary
	"#ec4899", // accent
	"#10b981", // success
	"#f59e0b", // warning
	"#3b82f6", // blue
	"#8b5cf6", // purple
	"#14b8a6", // teal
	"#f97316", // orange
	"#06b6d4", // cyan
}

// ChartColor 按序号取稳定的图表颜色
func ChartColor(index int) string {
	if index < 0 {
		index = -index
	}
	return chartColors[index%len(chartColors)]
}

// monthStart 返回 t 偏移 offset 个月后所在月份的月初
func monthStart(t time.Time, offset int) time.Time {
	total := t.Year()*12 + int(t.Month()) - 1 + offset
	return time.Date(total/12, time.Month(total%12+1), 1, 0, 0, 0, 0, t.Location())
}

// inRange 判断时间是否落在 [start, end] 内（含两端）
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
