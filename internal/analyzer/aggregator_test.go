package analyzer

import "testing"

// createTestRecords 规格说明书中的端到端场景数据
func createTestRecords() []Record {
	return []Record{
		{Product: "A", Size: "S", Quantity: 10, Amount: 100},
		{Product: "A", Size: "M", Quantity: 5, Amount: 60},
		{Product: "B", Size: "S", Quantity: 20, Amount: 150},
	}
}

func TestAggregate_ByProduct(t *testing.T) {
	t.Parallel()

	rows := Aggregate(createTestRecords(), ByProduct)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	// 金额降序：A(160) 在 B(150) 前
	if rows[0].Key.Product != "A" || rows[1].Key.Product != "B" {
		t.Fatalf("unexpected order: %v, %v", rows[0].Key, rows[1].Key)
	}

	if !floatEquals(rows[0].Quantity, 15) || !floatEquals(rows[0].Amount, 160) {
		t.Errorf("A: qty=%v amount=%v, want 15/160", rows[0].Quantity, rows[0].Amount)
	}
	if !floatEquals(rows[1].Quantity, 20) || !floatEquals(rows[1].Amount, 150) {
		t.Errorf("B: qty=%v amount=%v, want 20/150", rows[1].Quantity, rows[1].Amount)
	}

	if !floatEquals(rows[0].AmountShare, 160.0/310.0) {
		t.Errorf("A amount share = %v, want %v", rows[0].AmountShare, 160.0/310.0)
	}
	if !floatEquals(rows[1].AmountShare, 150.0/310.0) {
		t.Errorf("B amount share = %v, want %v", rows[1].AmountShare, 150.0/310.0)
	}
}

func TestAggregate_SharesSumToOne(t *testing.T) {
	t.Parallel()

	for _, key := range []GroupKeyFunc{ByProduct, ByProductSize} {
		rows := Aggregate(createTestRecords(), key)

		var amountShareSum, quantityShareSum float64
		for _, row := range rows {
			amountShareSum += row.AmountShare
			quantityShareSum += row.QuantityShare
		}
		if !floatEquals(amountShareSum, 1.0) {
			t.Errorf("amount shares sum = %v, want 1.0", amountShareSum)
		}
		if !floatEquals(quantityShareSum, 1.0) {
			t.Errorf("quantity shares sum = %v, want 1.0", quantityShareSum)
		}
	}
}

func TestAggregate_ZeroGrandTotal(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Product: "A", Quantity: 0, Amount: 0},
		{Product: "B", Quantity: 0, Amount: 0},
	}

	rows := Aggregate(records, ByProduct)
	for _, row := range rows {
		if row.QuantityShare != 0 || row.AmountShare != 0 {
			t.Errorf("%s: shares should be 0, got qty=%v amount=%v", row.Key.Product, row.QuantityShare, row.AmountShare)
		}
	}
}

func TestAggregate_ByProductSize_SeparateBuckets(t *testing.T) {
	t.Parallel()

	rows := Aggregate(createTestRecords(), ByProductSize)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	seen := make(map[GroupKey]bool)
	for _, row := range rows {
		if seen[row.Key] {
			t.Fatalf("duplicated key %v", row.Key)
		}
		seen[row.Key] = true
	}
	if !seen[(GroupKey{Product: "A", Size: "S"})] || !seen[(GroupKey{Product: "A", Size: "M"})] {
		t.Fatalf("sizes were merged: %v", rows)
	}
}

func TestAggregate_MissingSizeSingleBucket(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Product: "A", Size: "", Quantity: 1, Amount: 10},
		{Product: "A", Size: SizeUnspecified, Quantity: 2, Amount: 20},
	}

	rows := Aggregate(records, ByProductSize)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (single unspecified bucket)", len(rows))
	}
	if rows[0].Key.Size != SizeUnspecified {
		t.Errorf("size = %q, want %q", rows[0].Key.Size, SizeUnspecified)
	}
	if !floatEquals(rows[0].Quantity, 3) {
		t.Errorf("quantity = %v, want 3", rows[0].Quantity)
	}
}

func TestAggregate_SortOrder(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Product: "丙", Quantity: 5, Amount: 100},
		{Product: "甲", Quantity: 10, Amount: 100},
		{Product: "乙", Quantity: 10, Amount: 100},
		{Product: "丁", Quantity: 1, Amount: 200},
	}

	rows := Aggregate(records, ByProduct)

	// 金额优先，再销量，最后产品名升序兜底
	wantOrder := []string{"丁", "乙", "甲", "丙"}
	for i, want := range wantOrder {
		if rows[i].Key.Product != want {
			t.Fatalf("rows[%d] = %s, want %s (full order %v)", i, rows[i].Key.Product, want, rows)
		}
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	t.Parallel()

	rows := Aggregate(nil, ByProduct)
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}

func TestAggregate_ShippingSums(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Product: "A", Quantity: 1, Amount: 10, Shipping: 3},
		{Product: "A", Quantity: 1, Amount: 10, Shipping: 4},
	}

	rows := Aggregate(records, ByProduct)
	if !floatEquals(rows[0].Shipping, 7) {
		t.Errorf("shipping = %v, want 7", rows[0].Shipping)
	}
}
