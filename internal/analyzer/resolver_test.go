package analyzer

import (
	"errors"
	"testing"
)

func TestResolveColumns_ChineseHeaders(t *testing.T) {
	t.Parallel()

	mapping, err := ResolveColumns([]string{"产品", "数量", "金额"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if got := mapping.Column(RoleProduct); got != 0 {
		t.Errorf("product column = %d, want 0", got)
	}
	if got := mapping.Column(RoleQuantity); got != 1 {
		t.Errorf("quantity column = %d, want 1", got)
	}
	if got := mapping.Column(RoleAmount); got != 2 {
		t.Errorf("amount column = %d, want 2", got)
	}

	// 可选角色未识别不应导致失败
	for _, role := range []Role{RoleSize, RoleShipping, RoleDate} {
		if mapping.Has(role) {
			t.Errorf("role %s should be unresolved", role)
		}
	}
}

func TestResolveColumns_EnglishHeaders(t *testing.T) {
	t.Parallel()

	mapping, err := ResolveColumns([]string{"Item", "Size", "Qty", "Sales Amount", "Shipping", "Date"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := map[Role]int{
		RoleProduct:  0,
		RoleSize:     1,
		RoleQuantity: 2,
		RoleAmount:   3,
		RoleShipping: 4,
		RoleDate:     5,
	}
	for role, idx := range want {
		if got := mapping.Column(role); got != idx {
			t.Errorf("%s column = %d, want %d", role, got, idx)
		}
	}
}

func TestResolveColumns_FirstMatchWins(t *testing.T) {
	t.Parallel()

	// 两列都能匹配产品角色，靠左的一列胜出
	mapping, err := ResolveColumns([]string{"商品名称", "品名", "数量"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := mapping.Column(RoleProduct); got != 0 {
		t.Errorf("product column = %d, want 0", got)
	}
}

func TestResolveColumns_ClaimedColumnNotReused(t *testing.T) {
	t.Parallel()

	// “商品数量”先被产品角色认领并消费，数量角色落到后面的“件数”
	mapping, err := ResolveColumns([]string{"商品数量", "件数", "金额"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := mapping.Column(RoleProduct); got != 0 {
		t.Errorf("product column = %d, want 0", got)
	}
	if got := mapping.Column(RoleQuantity); got != 1 {
		t.Errorf("quantity column = %d, want 1", got)
	}
}

func TestResolveColumns_SKUColumn(t *testing.T) {
	t.Parallel()

	mapping, err := ResolveColumns([]string{"商品中文名称", "SKU", "数量", "金额"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := mapping.Column(RoleSKU); got != 1 {
		t.Errorf("sku column = %d, want 1", got)
	}
}

func TestResolveColumns_SKUBeforeSize(t *testing.T) {
	t.Parallel()

	// 规格编码 比尺寸同义词 规格 更具体，必须认领为 sku 而不是尺寸
	mapping, err := ResolveColumns([]string{"产品", "规格编码", "数量", "金额"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := mapping.Column(RoleSKU); got != 1 {
		t.Errorf("sku column = %d, want 1", got)
	}
	if mapping.Has(RoleSize) {
		t.Errorf("size column = %d, want unresolved", mapping.Column(RoleSize))
	}

	// 单独的 规格 列仍然是尺寸
	mapping, err = ResolveColumns([]string{"产品", "规格", "数量", "金额"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := mapping.Column(RoleSize); got != 1 {
		t.Errorf("size column = %d, want 1", got)
	}
}

func TestResolveColumns_MissingRequiredRoles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers []string
		missing []Role
	}{
		{"缺产品列", []string{"数量", "金额"}, []Role{RoleProduct}},
		{"缺数量和金额列", []string{"产品", "备注"}, []Role{RoleQuantity, RoleAmount}},
		{"全部缺失", []string{"备注", "状态"}, []Role{RoleProduct, RoleQuantity, RoleAmount}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveColumns(tt.headers)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if len(schemaErr.Unmatched) != len(tt.missing) {
				t.Fatalf("unmatched = %v, want %v", schemaErr.Unmatched, tt.missing)
			}
			for i, role := range tt.missing {
				if schemaErr.Unmatched[i] != role {
					t.Errorf("unmatched[%d] = %s, want %s", i, schemaErr.Unmatched[i], role)
				}
			}
		})
	}
}

func TestResolveColumns_QuantityOnlyIsEnough(t *testing.T) {
	t.Parallel()

	mapping, err := ResolveColumns([]string{"产品", "销量"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !mapping.Has(RoleQuantity) {
		t.Fatal("quantity should resolve")
	}
	if mapping.Has(RoleAmount) {
		t.Fatal("amount should stay unresolved")
	}
}

func TestResolveColumns_NormalizesHeaders(t *testing.T) {
	t.Parallel()

	mapping, err := ResolveColumns([]string{" 产 品\n名称 ", "数\t量", "金额(元)"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := mapping.Column(RoleProduct); got != 0 {
		t.Errorf("product column = %d, want 0", got)
	}
	if got := mapping.Column(RoleQuantity); got != 1 {
		t.Errorf("quantity column = %d, want 1", got)
	}
	if got := mapping.Column(RoleAmount); got != 2 {
		t.Errorf("amount column = %d, want 2", got)
	}
}
