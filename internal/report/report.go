// Package report 生成控制台可读的分析文本报告
package report

import (
	"fmt"
	"strings"
	"time"

	"shopscope/internal/analyzer"
	"shopscope/internal/util"
)

const bannerWidth = 60

// productSizeLimit 产品+尺寸明细只展示前若干行，避免长表刷屏
const productSizeLimit = 20

// Render 生成单数据集分析的文本报告
func Render(res *analyzer.Result, now time.Time) string {
	var b strings.Builder

	banner := strings.Repeat("=", bannerWidth)
	b.WriteString(banner + "\n")
	b.WriteString("店铺业绩分析报告\n")
	b.WriteString("生成时间: " + now.Format("2006-01-02 15:04:05") + "\n")
	b.WriteString(banner + "\n\n")

	writeSummary(&b, res.Summary)

	b.WriteString("【产品业绩分析】\n")
	writeAggregateTable(&b, res.ByProduct, len(res.ByProduct))
	b.WriteString("\n")

	b.WriteString("【产品+尺寸业绩分析】\n")
	writeAggregateTable(&b, res.ByProductSize, productSizeLimit)
	if len(res.ByProductSize) > productSizeLimit {
		fmt.Fprintf(&b, "  ... 其余 %d 行省略\n", len(res.ByProductSize)-productSizeLimit)
	}

	if res.Diagnostics.RejectedCount > 0 || res.Diagnostics.WarningCount > 0 {
		b.WriteString("\n【数据质量】\n")
		fmt.Fprintf(&b, "  总行数 %d，有效 %d，拒绝 %d，告警 %d\n",
			res.Diagnostics.TotalRows, res.Diagnostics.UsedRows,
			res.Diagnostics.RejectedCount, res.Diagnostics.WarningCount)
	}

	return b.String()
}

// RenderComparison 生成月度对比的文本报告
func RenderComparison(cmp *analyzer.Comparison, now time.Time) string {
	var b strings.Builder

	banner := strings.Repeat("=", bannerWidth)
	b.WriteString(banner + "\n")
	b.WriteString("月度业绩对比报告\n")
	b.WriteString("生成时间: " + now.Format("2006-01-02 15:04:05") + "\n")
	b.WriteString(banner + "\n\n")

	fmt.Fprintf(&b, "%-20s %14s %14s %14s %10s %6s\n",
		"产品", "上月销售额", "本月销售额", "变化", "变化率", "分类")
	for _, row := range cmp.Rows {
		rate := "—"
		if row.DeltaRate != nil {
			rate = util.FormatSignedPercent(*row.DeltaRate)
		}
		fmt.Fprintf(&b, "%-20s %14s %14s %14s %10s %6s\n",
			row.Product,
			util.FormatCurrency(row.PriorAmount),
			util.FormatCurrency(row.CurrentAmount),
			util.FormatCurrency(row.Delta),
			rate,
			classLabel(row.Class))
	}

	return b.String()
}

func writeSummary(b *strings.Builder, s analyzer.Summary) {
	b.WriteString("【汇总指标】\n")
	fmt.Fprintf(b, "  总销售额: %s\n", util.FormatCurrency(s.TotalAmount))
	fmt.Fprintf(b, "  总销量:   %.0f\n", s.TotalQuantity)
	fmt.Fprintf(b, "  总运费:   %s\n", util.FormatCurrency(s.TotalShipping))
	fmt.Fprintf(b, "  净收入:   %s\n", util.FormatCurrency(s.NetAmount))
	fmt.Fprintf(b, "  运费占比: %s\n", util.FormatShare(s.ShippingRatio))
	fmt.Fprintf(b, "  平均单价: %s\n", util.FormatCurrency(s.AvgUnitPrice))
	fmt.Fprintf(b, "  产品数: %d，产品尺寸组合数: %d\n", s.ProductCount, s.SKUCount)
	b.WriteString("\n")
}

func writeAggregateTable(b *strings.Builder, rows []analyzer.AggregateRow, limit int) {
	if len(rows) == 0 {
		b.WriteString("  (无数据)\n")
		return
	}

	fmt.Fprintf(b, "%-24s %10s %14s %10s %10s\n",
		"分组", "销量", "销售额", "销量占比", "金额占比")
	for i, row := range rows {
		if i >= limit {
			break
		}
		fmt.Fprintf(b, "%-24s %10.0f %14s %10s %10s\n",
			row.Key.Label(),
			row.Quantity,
			util.FormatCurrency(row.Amount),
			util.FormatShare(row.QuantityShare),
			util.FormatShare(row.AmountShare))
	}
}

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
