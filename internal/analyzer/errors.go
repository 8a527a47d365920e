package analyzer

import (
	"fmt"
	"strings"
)

// SchemaError 表头无法映射到必需角色
// 携带未匹配的角色列表，供调用方提示手工映射
type SchemaError struct {
	Unmatched []Role
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Unmatched))
	for i, r := range e.Unmatched {
		names[i] = string(r)
	}
	return "schema unrecognized: missing roles " + strings.Join(names, ", ")
}

// NoUsableDataError 标准化后没有任何可用数据行
// 携带已收集的诊断信息
type NoUsableDataError struct {
	Diagnostics Diagnostics
}

func (e *NoUsableDataError) Error() string {
	return "no usable data rows after normalization"
}

// DatasetTooLargeError 数据行数超过配置上限
type DatasetTooLargeError struct {
	Limit int
}

func (e *DatasetTooLargeError) Error() string {
	return fmt.Sprintf("dataset exceeds row limit of %d", e.Limit)
}
