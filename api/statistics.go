package api

import (
	"time"

	"github.com/bagy391/budget-tracker/database"
	"github.com/bagy391/budget-tracker/models"
	"github.com/bagy391/budget-tracker/service"

	"github.com/gin-gonic/gin"
)

// StatisticsHandler 统计处理器
type StatisticsHandler struct{}

// NewStatisticsHandler 创建统计处理器
func NewStatisticsHandler() *StatisticsHandler {
	return &StatisticsHandler{}
}

// OverviewResponse 首页概览：当前预算统计 + 本月收支
type OverviewResponse struct {
	Budget         *models.Budget      `json:"budget"`
	Stats          service.BudgetStats `json:"stats"`
	Health         string              `json:"health"`
	MonthExpense   float64             `json:"month_expense"`
	MonthIncome    float64             `json:"month_income"`
	RemainingLabel string              `json:"remaining_label"` // 格式化的剩余金额，如 ₹12,345.00
}

// CategorySlice 带图表颜色的类别分片
type CategorySlice struct {
	service.CategorySummary
	Color string `json:"color"`
}

// PaymentSliceView 带图表颜色的支付方式分片
type PaymentSliceView struct {
	service.PaymentSlice
	Color string `json:"color"`
}

// DashboardResponse 仪表盘数据
type DashboardResponse struct {
	Period     string               `json:"period"`
	StartDate  string               `json:"start_date"`
	EndDate    string               `json:"end_date"`
	Monthly    []service.MonthPoint `json:"monthly"`
	ByCategory []CategorySlice      `json:"by_category"`
	ByPayment  []PaymentSliceView   `json:"by_payment"`
}

// loadFamilyData 加载统计所需的家庭域数据
func loadFamilyData(c *gin.Context, familyID uint, start, end time.Time) (expenses []models.Expense, incomes []models.Income, budgets []models.Budget, ok bool) {
	if err := database.DB.
		Preload("Category").Preload("PaymentMethod").
		Where("family_id = ? AND transaction_date >= ? AND transaction_date <= ?", familyID, start, end).
		Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取消费记录失败"))
		return nil, nil, nil, false
	}
	if err := database.DB.
		Where("family_id = ? AND date >= ? AND date <= ?", familyID, start, end).
		Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取收入记录失败"))
		return nil, nil, nil, false
	}
	if err := database.DB.
		Where("family_id = ?", familyID).
		Find(&budgets).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取预算失败"))
		return nil, nil, nil, false
	}
	return expenses, incomes, budgets, true
}

// Overview 获取首页概览
// @Summary 获取首页概览
// @Description 当前预算统计（总额/已花/剩余/每日可花/剩余天数）、健康度及本月收支总额
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Success 200 {object} Response{data=OverviewResponse} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/statistics/overview [get]
func (h *StatisticsHandler) Overview(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	now := time.Now()
	monthStart, monthEnd := service.PeriodWindow(service.PeriodMonth, now)

	expenses, incomes, budgets, ok := loadFamilyData(c, familyID, monthStart, monthEnd)
	if !ok {
		return
	}

	current := service.CurrentBudget(budgets, now)

	// 预算区间可能跨出本月，统计用的消费按预算区间单独取
	budgetExpenses := expenses
	if current != nil && (current.StartDate.Before(monthStart) || current.EndDate.After(monthEnd)) {
		var inBudget []models.Expense
		if err := database.DB.
			Where("family_id = ? AND transaction_date >= ? AND transaction_date <= ?",
				familyID, current.StartDate, current.EndDate).
			Find(&inBudget).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "获取消费记录失败"))
			return
		}
		budgetExpenses = inBudget
	}

	stats := service.CalculateBudgetStats(current, budgetExpenses, now)

	var monthExpense, monthIncome float64
	for _, e := range expenses {
		monthExpense += e.Amount
	}
	for _, in := range incomes {
		monthIncome += in.Amount
	}

	Success(c, OverviewResponse{
		Budget:         current,
		Stats:          stats,
		Health:         service.BudgetHealth(stats.Percentage),
		MonthExpense:   monthExpense,
		MonthIncome:    monthIncome,
		RemainingLabel: service.FormatCurrency(stats.Remaining),
	})
}

// Dashboard 获取仪表盘数据
// @Summary 获取仪表盘数据
// @Description 按周期返回逐月收支/预算序列、类别分布和支付方式分布
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param id path int true "家庭ID"
// @Param period query string false "周期" Enums(month, 3months, 6months, year) default(3months)
// @Success 200 {object} Response{data=DashboardResponse} "获取成功"
// @Failure 403 {object} Response "不是该家庭成员"
// @Router /api/v1/families/{id}/statistics/dashboard [get]
func (h *StatisticsHandler) Dashboard(c *gin.Context) {
	familyID, ok := familyIDParam(c)
	if !ok {
		return
	}
	if _, ok := requireFamilyMember(c, familyID); !ok {
		return
	}

	period := c.DefaultQuery("period", service.PeriodThreeMonths)
	now := time.Now()
	start, end := service.PeriodWindow(period, now)

	expenses, incomes, budgets, ok := loadFamilyData(c, familyID, start, end)
	if !ok {
		return
	}

	var categories []models.Category
	if err := database.DB.
		Where("family_id = ?", familyID).
		Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "获取类别失败"))
		return
	}

	byCategory := service.GroupByCategory(expenses, categories)
	catSlices := make([]CategorySlice, 0, len(byCategory))
	for i, s := range byCategory {
		catSlices = append(catSlices, CategorySlice{
			CategorySummary: s,
			Color:           service.ChartColor(i),
		})
	}

	byPayment := service.GroupByPaymentMethod(expenses)
	paySlices := make([]PaymentSliceView, 0, len(byPayment))
	for i, s := range byPayment {
		paySlices = append(paySlices, PaymentSliceView{
			PaymentSlice: s,
			Color:        service.ChartColor(i),
		})
	}

	Success(c, DashboardResponse{
		Period:     period,
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		Monthly:    service.BuildMonthlySeries(expenses, incomes, budgets, start, end),
		ByCategory: catSlices,
		ByPayment:  paySlices,
	})
}
