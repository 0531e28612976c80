package service

import (
	"sort"

	"github.com/bagy391/budget-tracker/models"
)

// 类别已删除时的回退展示
const (
	UncategorizedName = "Uncategorized"
	UncategorizedIcon = "📦"
)

// CategorySummary 单个类别的汇总
type CategorySummary struct {
	CategoryID uint    `json:"category_id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
}

// GroupByCategory 按类别分组汇总消费。分组键始终是 category_id：
// 类别已被删除时只回退名称和图标，不把不同的未知 id 合并到一起。
// 结果按总额降序，相同总额保持输入先后顺序。
func GroupByCategory(expenses []models.Expense, categories []models.Category) []CategorySummary {
	byID := make(map[uint]*CategorySummary)
	var order []uint

	catLookup := make(map[uint]models.Category, len(categories))
	for _, c := range categories {
		catLookup[c.ID] = c
	}

	for _, e := range expenses {
		var id uint
		if e.CategoryID != nil {
			id = *e.CategoryID
		}
		s, ok := byID[id]
		if !ok {
			s = &CategorySummary{
				CategoryID: id,
				Name:       UncategorizedName,
				Icon:       UncategorizedIcon,
			}
			if cat, found := catLookup[id]; found {
				s.Name = cat.Name
				s.Icon = cat.Icon
			}
			byID[id] = s
			order = append(order, id)
		}
		s.Total += e.Amount
		s.Count++
	}

	result := make([]CategorySummary, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})
	return result
}
