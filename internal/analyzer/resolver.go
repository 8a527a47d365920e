package analyzer

import "strings"

// roleSynonym 角色与同义词集合
// 表的顺序即角色优先级：同一列命中多个角色时，排前的角色先认领
type roleSynonym struct {
	Role  Role
	Words []string
}

// roleSynonyms 中英文列名同义词表
// 同义词取自常见店铺订单导出格式，英文词全部小写。
// sku 排在尺寸之前：规格编码 比 规格 更具体，先让更长的同义词认领
var roleSynonyms = []roleSynonym{
	{RoleProduct, []string{"产品", "品名", "商品", "货品", "名称", "product", "item"}},
	{RoleSKU, []string{"sku", "货号", "规格编码"}},
	{RoleSize, []string{"尺寸", "规格", "size"}},
	{RoleQuantity, []string{"数量", "件数", "销量", "quantity", "qty"}},
	{RoleAmount, []string{"金额", "销售额", "收入", "amount", "sales"}},
	{RoleShipping, []string{"运费", "邮费", "快递费", "shipping"}},
	{RoleDate, []string{"日期", "时间", "date", "月份", "month"}},
}

// ResolveColumns 将表头映射到语义角色
//
// 逐列从左到右扫描，每列按优先级匹配同义词；角色先到先得，
// 已被认领的列不再参与其它角色的匹配。
// 产品列缺失，或数量、金额两列同时缺失时，数据集不可分析。
func ResolveColumns(headers []string) (ColumnMapping, error) {
	mapping := make(ColumnMapping)

	for idx, raw := range headers {
		col := NormalizeColumnName(raw)
		if col == "" {
			continue
		}
		lower := strings.ToLower(col)

		for _, entry := range roleSynonyms {
			if !ContainsAny(lower, entry.Words) {
				continue
			}
			if !mapping.Has(entry.Role) {
				mapping[entry.Role] = idx
			}
			// 命中即消费该列，同义词集合重叠时不会被重复认领
			break
		}
	}

	var missing []Role
	if !mapping.Has(RoleProduct) {
		missing = append(missing, RoleProduct)
	}
	if !mapping.Has(RoleQuantity) && !mapping.Has(RoleAmount) {
		missing = append(missing, RoleQuantity, RoleAmount)
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Unmatched: missing}
	}

	return mapping, nil
}
