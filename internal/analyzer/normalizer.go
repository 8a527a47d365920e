package analyzer

import (
	"fmt"
	"strings"
)

// maxDiagnosticDetails 诊断明细的保留上限，计数不受影响
const maxDiagnosticDetails = 50

// cell 取指定列的单元格，列缺失或越界返回空串
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// NormalizeRows 将原始数据行转换为标准化记录
//
// 数值列按 0 兜底并记录软告警；产品名为空或全部数值列不可解析的行被拒绝。
// 全部行被拒绝时返回 NoUsableDataError。
func NormalizeRows(ds Dataset, mapping ColumnMapping) ([]Record, Diagnostics, error) {
	diags := Diagnostics{TotalRows: len(ds.Rows)}

	records := make([]Record, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		rowNo := i + 1

		rec, rej := normalizeRow(row, rowNo, mapping, &diags)
		if rej != nil {
			diags.RejectedCount++
			if len(diags.Rejected) < maxDiagnosticDetails {
				diags.Rejected = append(diags.Rejected, *rej)
			}
			continue
		}
		records = append(records, rec)
	}

	diags.UsedRows = len(records)

	if diags.TotalRows > 0 && len(records) == 0 {
		return nil, diags, &NoUsableDataError{Diagnostics: diags}
	}

	return records, diags, nil
}

// normalizeRow 标准化单行数据，不可用时返回拒绝原因
func normalizeRow(row []string, rowNo int, mapping ColumnMapping, diags *Diagnostics) (Record, *RowRejection) {
	product := cell(row, mapping.Column(RoleProduct))
	if product == "" {
		return Record{}, &RowRejection{Row: rowNo, Reason: "产品名称为空"}
	}

	numericRoles := []struct {
		Role Role
		Name string
	}{
		{RoleQuantity, "数量"},
		{RoleAmount, "金额"},
		{RoleShipping, "运费"},
	}

	values := make(map[Role]float64, len(numericRoles))
	attempted := 0
	failed := 0
	var pending []string
	for _, nr := range numericRoles {
		idx := mapping.Column(nr.Role)
		if idx < 0 {
			continue
		}
		raw := cell(row, idx)
		if raw != "" {
			attempted++
		}
		v, ok := parseNumericCell(raw)
		if !ok {
			failed++
			pending = append(pending, fmt.Sprintf("第%d行: %s无法解析: %q，按0处理", rowNo, nr.Name, raw))
			v = 0
		}
		values[nr.Role] = v
	}

	// 映射到的数值单元格全部非空且全部解析失败，这一行没有任何可统计信息
	if attempted > 0 && failed == attempted {
		return Record{}, &RowRejection{Row: rowNo, Reason: "数值字段均无法解析"}
	}

	// 行被保留才落软告警，被拒绝的行只计入拒绝明细
	for _, msg := range pending {
		warn(diags, msg)
	}

	quantity := values[RoleQuantity]
	if quantity < 0 {
		warn(diags, fmt.Sprintf("第%d行: 数量为负(%.2f)，按0处理", rowNo, quantity))
		quantity = 0
	}

	rec := Record{
		Product:  product,
		Quantity: quantity,
		Amount:   values[RoleAmount],
		Shipping: values[RoleShipping],
	}

	rec.Size = resolveSize(row, mapping)

	if idx := mapping.Column(RoleDate); idx >= 0 {
		rec.Date = ParseDate(cell(row, idx))
	}

	return rec, nil
}

// resolveSize 确定记录的尺寸
// 优先用尺寸列；尺寸列缺失但识别到 SKU 列时，从 SKU 文本中提取
func resolveSize(row []string, mapping ColumnMapping) string {
	if idx := mapping.Column(RoleSize); idx >= 0 {
		if size := cell(row, idx); size != "" {
			return size
		}
		return SizeUnspecified
	}
	if idx := mapping.Column(RoleSKU); idx >= 0 {
		return ExtractSize(cell(row, idx))
	}
	return SizeUnspecified
}

func warn(diags *Diagnostics, msg string) {
	diags.WarningCount++
	if len(diags.Warnings) < maxDiagnosticDetails {
		diags.Warnings = append(diags.Warnings, msg)
	}
}
