package analyzer

import (
	"math"
	"sort"
)

// DefaultGrowthThreshold 增长/下滑判定阈值（±5%）
const DefaultGrowthThreshold = 0.05

// CompareOptions 对比选项
type CompareOptions struct {
	// GrowthThreshold 增长/下滑阈值，<=0 时取默认值
	GrowthThreshold float64
}

// CompareTables 对齐两期的产品汇总表并计算变化
//
// 取两表产品键的并集，缺席的一侧按 0 对待；变化率在上期金额为 0
// 时为 nil。任一侧为空表不视为错误，两侧都为空时返回空表。
// 输出按变化绝对值降序排列，幅度相同按产品名升序。
func CompareTables(prior, current []AggregateRow, opts CompareOptions) []ComparisonRow {
	threshold := opts.GrowthThreshold
	if threshold <= 0 {
		threshold = DefaultGrowthThreshold
	}

	priorMap := make(map[string]AggregateRow, len(prior))
	for _, row := range prior {
		priorMap[row.Key.Product] = row
	}
	currentMap := make(map[string]AggregateRow, len(current))
	for _, row := range current {
		currentMap[row.Key.Product] = row
	}

	products := make([]string, 0, len(priorMap)+len(currentMap))
	seen := make(map[string]bool, len(priorMap)+len(currentMap))
	for _, row := range prior {
		if !seen[row.Key.Product] {
			seen[row.Key.Product] = true
			products = append(products, row.Key.Product)
		}
	}
	for _, row := range current {
		if !seen[row.Key.Product] {
			seen[row.Key.Product] = true
			products = append(products, row.Key.Product)
		}
	}

	rows := make([]ComparisonRow, 0, len(products))
	for _, product := range products {
		p := priorMap[product]
		c := currentMap[product]

		row := ComparisonRow{
			Product:         product,
			PriorAmount:     p.Amount,
			CurrentAmount:   c.Amount,
			Delta:           c.Amount - p.Amount,
			PriorQuantity:   p.Quantity,
			CurrentQuantity: c.Quantity,
		}
		if p.Amount > 0 {
			rate := row.Delta / p.Amount
			row.DeltaRate = &rate
		}
		row.Class = classify(row, threshold)

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		di, dj := math.Abs(rows[i].Delta), math.Abs(rows[j].Delta)
		if di != dj {
			return di > dj
		}
		return rows[i].Product < rows[j].Product
	})

	return rows
}

// classify 判定产品的跨期变化分类
// 阈值比较使用严格不等号：恰好 ±5% 归为持平
func classify(row ComparisonRow, threshold float64) Classification {
	switch {
	case row.PriorAmount == 0 && row.CurrentAmount > 0:
		return ClassNew
	case row.CurrentAmount == 0 && row.PriorAmount > 0:
		return ClassDiscontinued
	case row.DeltaRate != nil && *row.DeltaRate > threshold:
		return ClassGrowing
	case row.DeltaRate != nil && *row.DeltaRate < -threshold:
		return ClassDeclining
	default:
		return ClassFlat
	}
}
