package analyzer

import "time"

// Role 列的语义角色
type Role string

const (
	RoleProduct  Role = "product"
	RoleSize     Role = "size"
	RoleQuantity Role = "quantity"
	RoleAmount   Role = "amount"
	RoleShipping Role = "shipping"
	RoleDate     Role = "date"
	RoleSKU      Role = "sku"
)

// SizeUnspecified 尺寸缺失时的统一分桶
const SizeUnspecified = "尺寸未指定"

// Dataset 表格数据集：表头 + 数据行
// 来源（Excel 解析、上传接口）由外部协作方提供
type Dataset struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ColumnMapping 角色到列索引的映射
type ColumnMapping map[Role]int

// Column 返回角色对应的列索引，未识别返回 -1
func (m ColumnMapping) Column(role Role) int {
	if idx, ok := m[role]; ok {
		return idx
	}
	return -1
}

// Has 判断角色是否已识别
func (m ColumnMapping) Has(role Role) bool {
	_, ok := m[role]
	return ok
}

// Record 一条标准化后的订单记录
// 由行标准化器创建，创建后不再修改
type Record struct {
	Product  string     `json:"product"`
	Size     string     `json:"size"`
	Quantity float64    `json:"quantity"`
	Amount   float64    `json:"amount"`
	Shipping float64    `json:"shipping"`
	Date     *time.Time `json:"date,omitempty"`
}

// GroupKey 分组键：仅产品，或产品+尺寸
type GroupKey struct {
	Product string `json:"product"`
	Size    string `json:"size,omitempty"`
}

// Label 分组键的展示名（产品_尺寸）
func (k GroupKey) Label() string {
	if k.Size == "" {
		return k.Product
	}
	return k.Product + "_" + k.Size
}

// AggregateRow 单个分组的汇总行
type AggregateRow struct {
	Key           GroupKey `json:"key"`
	Quantity      float64  `json:"quantity"`
	Amount        float64  `json:"amount"`
	Shipping      float64  `json:"shipping"`
	QuantityShare float64  `json:"quantityShare"`
	AmountShare   float64  `json:"amountShare"`
}

// Classification 产品跨期变化分类
type Classification string

const (
	ClassNew          Classification = "new"          // 新增
	ClassGrowing      Classification = "growing"      // 增长
	ClassDeclining    Classification = "declining"    // 下滑
	ClassDiscontinued Classification = "discontinued" // 停售
	ClassFlat         Classification = "flat"         // 持平
)

// ComparisonRow 单个产品的跨期对比行
// DeltaRate 在上期金额为 0 时为 nil（不适用，而非无穷大）
type ComparisonRow struct {
	Product         string         `json:"product"`
	PriorAmount     float64        `json:"priorAmount"`
	CurrentAmount   float64        `json:"currentAmount"`
	Delta           float64        `json:"delta"`
	DeltaRate       *float64       `json:"deltaRate,omitempty"`
	PriorQuantity   float64        `json:"priorQuantity"`
	CurrentQuantity float64        `json:"currentQuantity"`
	Class           Classification `json:"class"`
}

// RowRejection 被拒绝的数据行
type RowRejection struct {
	Row    int    `json:"row"` // 数据区内的行号，从 1 开始
	Reason string `json:"reason"`
}

// Diagnostics 行级诊断汇总
// 明细条数有上限，计数字段始终是全量
type Diagnostics struct {
	TotalRows     int            `json:"totalRows"`
	UsedRows      int            `json:"usedRows"`
	RejectedCount int            `json:"rejectedCount"`
	Rejected      []RowRejection `json:"rejected,omitempty"`
	WarningCount  int            `json:"warningCount"`
	Warnings      []string       `json:"warnings,omitempty"`
}

// Summary 数据集汇总指标
type Summary struct {
	TotalAmount   float64 `json:"totalAmount"`
	TotalQuantity float64 `json:"totalQuantity"`
	TotalShipping float64 `json:"totalShipping"`
	NetAmount     float64 `json:"netAmount"`     // 销售额 - 运费
	ShippingRatio float64 `json:"shippingRatio"` // 运费 / 销售额
	AvgUnitPrice  float64 `json:"avgUnitPrice"`  // 销售额 / 销量
	ProductCount  int     `json:"productCount"`
	SKUCount      int     `json:"skuCount"` // 产品+尺寸组合数
	UsedRows      int     `json:"usedRows"`
	RejectedRows  int     `json:"rejectedRows"`
}

// ShippingBucket 运费分布区间
type ShippingBucket struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Fee   float64 `json:"fee"`
}

// SizeRow 按尺寸单独汇总的行
type SizeRow struct {
	Size         string  `json:"size"`
	Quantity     float64 `json:"quantity"`
	Amount       float64 `json:"amount"`
	ProductCount int     `json:"productCount"` // 该尺寸下的不同产品数
}

// DailyRow 每日趋势行
type DailyRow struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
	Shipping float64 `json:"shipping"`
}

// Result 单数据集分析结果
type Result struct {
	Mapping       ColumnMapping    `json:"mapping"`
	ByProduct     []AggregateRow   `json:"byProduct"`
	ByProductSize []AggregateRow   `json:"byProductSize"`
	BySize        []SizeRow        `json:"bySize,omitempty"`
	Summary       Summary          `json:"summary"`
	Shipping      []ShippingBucket `json:"shipping,omitempty"`
	Daily         []DailyRow       `json:"daily,omitempty"`
	Diagnostics   Diagnostics      `json:"diagnostics"`
}

// Comparison 两期对比结果，附带两期的产品汇总表供导出
type Comparison struct {
	Rows    []ComparisonRow `json:"rows"`
	Prior   []AggregateRow  `json:"prior"`
	Current []AggregateRow  `json:"current"`
}
