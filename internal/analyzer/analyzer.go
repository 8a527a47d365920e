// Package analyzer 实现店铺业绩分析核心：
// 列角色识别、行标准化、分组汇总与跨期对比。
// 每次分析都在自己的输入副本上计算，没有跨调用的共享状态。
package analyzer

// DefaultMaxRows 数据行数默认上限，防止畸形输入占用过多内存
const DefaultMaxRows = 50000

// Options 分析选项
type Options struct {
	// MaxRows 数据行数上限，<=0 时取默认值
	MaxRows int
}

// Analyze 对单个数据集执行完整分析流水线
//
// 识别列角色 → 标准化数据行 → 按产品和产品+尺寸两种口径汇总，
// 并补充汇总指标、运费分布与每日趋势。
func Analyze(ds Dataset, opts Options) (*Result, error) {
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	if len(ds.Rows) > maxRows {
		return nil, &DatasetTooLargeError{Limit: maxRows}
	}

	mapping, err := ResolveColumns(ds.Headers)
	if err != nil {
		return nil, err
	}

	records, diags, err := NormalizeRows(ds, mapping)
	if err != nil {
		return nil, err
	}

	byProduct := Aggregate(records, ByProduct)
	byProductSize := Aggregate(records, ByProductSize)

	return &Result{
		Mapping:       mapping,
		ByProduct:     byProduct,
		ByProductSize: byProductSize,
		BySize:        SizePerformance(records),
		Summary:       Summarize(records, byProduct, byProductSize, diags),
		Shipping:      ShippingDistribution(records),
		Daily:         DailyTrends(records),
		Diagnostics:   diags,
	}, nil
}

// Compare 对比两期的分析结果
func Compare(prior, current *Result, opts CompareOptions) *Comparison {
	return &Comparison{
		Rows:    CompareTables(prior.ByProduct, current.ByProduct, opts),
		Prior:   prior.ByProduct,
		Current: current.ByProduct,
	}
}
