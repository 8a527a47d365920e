package analyzer

import "sort"

// Summarize 计算数据集的汇总指标
func Summarize(records []Record, byProduct, byProductSize []AggregateRow, diags Diagnostics) Summary {
	s := Summary{
		ProductCount: len(byProduct),
		SKUCount:     len(byProductSize),
		UsedRows:     diags.UsedRows,
		RejectedRows: diags.RejectedCount,
	}

	for _, rec := range records {
		s.TotalAmount += rec.Amount
		s.TotalQuantity += rec.Quantity
		s.TotalShipping += rec.Shipping
	}

	s.NetAmount = s.TotalAmount - s.TotalShipping
	if s.TotalAmount > 0 {
		s.ShippingRatio = s.TotalShipping / s.TotalAmount
	}
	if s.TotalQuantity > 0 {
		s.AvgUnitPrice = s.TotalAmount / s.TotalQuantity
	}

	return s
}

// shippingBucketDef 运费分布的固定区间
type shippingBucketDef struct {
	Label string
	Upper float64 // 上界（含），0 表示无上界
}

var shippingBucketDefs = []shippingBucketDef{
	{"免运费", 0.01},
	{"0-10元", 10},
	{"10-20元", 20},
	{"20-50元", 50},
	{"50-100元", 100},
	{"100元以上", 0}, // 无上界
}

// ShippingDistribution 统计运费分布
// 返回固定区间列表，包含空区间，便于前端直接渲染
func ShippingDistribution(records []Record) []ShippingBucket {
	buckets := make([]ShippingBucket, len(shippingBucketDefs))
	for i, def := range shippingBucketDefs {
		buckets[i] = ShippingBucket{Label: def.Label}
	}

	for _, rec := range records {
		idx := len(buckets) - 1
		for i, def := range shippingBucketDefs {
			if def.Upper > 0 && rec.Shipping <= def.Upper {
				idx = i
				break
			}
		}
		buckets[idx].Count++
		buckets[idx].Fee += rec.Shipping
	}

	return buckets
}

// SizePerformance 按尺寸单独汇总
// 统计各尺寸的销量、销售额与覆盖的不同产品数，按销售额降序
func SizePerformance(records []Record) []SizeRow {
	bySize := make(map[string]*SizeRow)
	products := make(map[string]map[string]struct{})

	for _, rec := range records {
		size := rec.Size
		if size == "" {
			size = SizeUnspecified
		}
		row, ok := bySize[size]
		if !ok {
			row = &SizeRow{Size: size}
			bySize[size] = row
			products[size] = make(map[string]struct{})
		}
		row.Quantity += rec.Quantity
		row.Amount += rec.Amount
		products[size][rec.Product] = struct{}{}
	}

	result := make([]SizeRow, 0, len(bySize))
	for size, row := range bySize {
		row.ProductCount = len(products[size])
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		return result[i].Size < result[j].Size
	})

	return result
}

// DailyTrends 按日期汇总销量、金额与运费
// 只统计日期解析成功的记录，按日期升序；没有日期时返回空表
func DailyTrends(records []Record) []DailyRow {
	byDay := make(map[string]*DailyRow)

	for _, rec := range records {
		if rec.Date == nil {
			continue
		}
		day := formatDay(*rec.Date)
		row, ok := byDay[day]
		if !ok {
			row = &DailyRow{Date: day}
			byDay[day] = row
		}
		row.Quantity += rec.Quantity
		row.Amount += rec.Amount
		row.Shipping += rec.Shipping
	}

	result := make([]DailyRow, 0, len(byDay))
	for _, row := range byDay {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	return result
}
