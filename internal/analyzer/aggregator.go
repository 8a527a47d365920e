package analyzer

import "sort"

// GroupKeyFunc 记录到分组键的映射函数
type GroupKeyFunc func(Record) GroupKey

// ByProduct 仅按产品分组
func ByProduct(r Record) GroupKey {
	return GroupKey{Product: r.Product}
}

// ByProductSize 按产品+尺寸分组，尺寸缺失归入统一的未指定分桶
func ByProductSize(r Record) GroupKey {
	size := r.Size
	if size == "" {
		size = SizeUnspecified
	}
	return GroupKey{Product: r.Product, Size: size}
}

// Aggregate 对记录序列做分组汇总
//
// 单次遍历累加各组的销量、金额与运费，再根据总计推导占比。
// 总计为 0 时所有占比为 0 而不是除零错误。空输入返回空表。
// 输出按金额降序排列，金额相同按销量降序，再按分组名升序保证稳定。
func Aggregate(records []Record, key GroupKeyFunc) []AggregateRow {
	sums := make(map[GroupKey]*AggregateRow)

	for _, rec := range records {
		k := key(rec)
		row, ok := sums[k]
		if !ok {
			row = &AggregateRow{Key: k}
			sums[k] = row
		}
		row.Quantity += rec.Quantity
		row.Amount += rec.Amount
		row.Shipping += rec.Shipping
	}

	var grandQuantity, grandAmount float64
	for _, row := range sums {
		grandQuantity += row.Quantity
		grandAmount += row.Amount
	}

	result := make([]AggregateRow, 0, len(sums))
	for _, row := range sums {
		if grandQuantity != 0 {
			row.QuantityShare = row.Quantity / grandQuantity
		}
		if grandAmount != 0 {
			row.AmountShare = row.Amount / grandAmount
		}
		result = append(result, *row)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		if result[i].Quantity != result[j].Quantity {
			return result[i].Quantity > result[j].Quantity
		}
		return result[i].Key.Label() < result[j].Key.Label()
	})

	return result
}
