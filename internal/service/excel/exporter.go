package excel

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"shopscope/internal/analyzer"
)

// 导出工作簿的固定 sheet 名
const (
	SheetProduct     = "产品业绩"
	SheetProductSize = "产品尺寸业绩"
	SheetComparison  = "月度对比"
	SheetDaily       = "每日趋势"
	SheetSummary     = "汇总指标"
)

// WriteResult 把单数据集分析结果写成 Excel 工作簿
// 对比结果可选，传 nil 时不生成对比 sheet
func WriteResult(res *analyzer.Result, cmp *analyzer.Comparison) (*excelize.File, error) {
	f := excelize.NewFile()

	// 默认 Sheet1 改名为第一个结果表
	if err := f.SetSheetName("Sheet1", SheetProduct); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeAggregateSheet(f, SheetProduct, res.ByProduct, false); err != nil {
		_ = f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(SheetProductSize); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeAggregateSheet(f, SheetProductSize, res.ByProductSize, true); err != nil {
		_ = f.Close()
		return nil, err
	}

	if cmp != nil {
		if _, err := f.NewSheet(SheetComparison); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := writeComparisonSheet(f, cmp.Rows); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if len(res.Daily) > 0 {
		if _, err := f.NewSheet(SheetDaily); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := writeDailySheet(f, res.Daily); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeSummarySheet(f, res.Summary); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeAggregateSheet(f *excelize.File, sheet string, rows []analyzer.AggregateRow, withSize bool) error {
	header := []interface{}{"产品", "销量", "销售额", "运费", "销量占比(%)", "销售额占比(%)"}
	if withSize {
		header = []interface{}{"产品", "尺寸", "销量", "销售额", "运费", "销量占比(%)", "销售额占比(%)"}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		cells := []interface{}{
			row.Key.Product,
			row.Quantity,
			round2(row.Amount),
			round2(row.Shipping),
			round2(row.QuantityShare * 100),
			round2(row.AmountShare * 100),
		}
		if withSize {
			cells = append([]interface{}{row.Key.Product, row.Key.Size}, cells[1:]...)
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

func writeComparisonSheet(f *excelize.File, rows []analyzer.ComparisonRow) error {
	header := []interface{}{"产品", "上月销售额", "本月销售额", "销售额变化", "销售额变化率(%)", "分类"}
	if err := f.SetSheetRow(SheetComparison, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		var rate interface{} = "—" // 上期为 0 时变化率不适用
		if row.DeltaRate != nil {
			rate = round2(*row.DeltaRate * 100)
		}
		cells := []interface{}{
			row.Product,
			round2(row.PriorAmount),
			round2(row.CurrentAmount),
			round2(row.Delta),
			rate,
			classLabel(row.Class),
		}
		if err := f.SetSheetRow(SheetComparison, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

func writeDailySheet(f *excelize.File, rows []analyzer.DailyRow) error {
	header := []interface{}{"日期", "销量", "销售额", "运费"}
	if err := f.SetSheetRow(SheetDaily, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cells := []interface{}{row.Date, row.Quantity, round2(row.Amount), round2(row.Shipping)}
		if err := f.SetSheetRow(SheetDaily, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s analyzer.Summary) error {
	items := []struct {
		Name  string
		Value interface{}
	}{
		{"总销售额", round2(s.TotalAmount)},
		{"总销量", s.TotalQuantity},
		{"总运费", round2(s.TotalShipping)},
		{"净收入", round2(s.NetAmount)},
		{"运费占比(%)", round2(s.ShippingRatio * 100)},
		{"平均单价", round2(s.AvgUnitPrice)},
		{"产品数量", s.ProductCount},
		{"产品尺寸组合数", s.SKUCount},
		{"有效行数", s.UsedRows},
		{"拒绝行数", s.RejectedRows},
	}

	header := []interface{}{"指标", "值"}
	if err := f.SetSheetRow(SheetSummary, "A1", &header); err != nil {
		return err
	}
	for i, item := range items {
		cells := []interface{}{item.Name, item.Value}
		if err := f.SetSheetRow(SheetSummary, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

// classLabel 把分类枚举转成报表里的中文说明
func classLabel(c analyzer.Classification) string {
	switch c {
	case analyzer.ClassNew:
		return "新增"
	case analyzer.ClassGrowing:
		return "增长"
	case analyzer.ClassDeclining:
		return "下滑"
	case analyzer.ClassDiscontinued:
		return "停售"
	default:
		return "持平"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
