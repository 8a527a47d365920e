package analyzer

import "testing"

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{" 产品名称 ", "产品名称"},
		{"销售\n金额", "销售金额"},
		{"数\t量", "数量"},
		{"a  b\r\nc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeColumnName(tt.in); got != tt.want {
			t.Errorf("NormalizeColumnName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumericCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"", 0, true},
		{"  ", 0, true},
		{"123", 123, true},
		{"1,234.5", 1234.5, true},
		{"-3.2", -3.2, true},
		{"¥99.9", 99.9, true},
		{"15%", 15, true},
		{"15％", 15, true},
		{"abc", 0, false},
		{"12元", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumericCell(tt.in)
		if ok != tt.wantOK {
			t.Errorf("parseNumericCell(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && !floatEquals(got, tt.want) {
			t.Errorf("parseNumericCell(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	valid := []string{
		"2025-06-01",
		"2025/06/01",
		"2025-6-1",
		"2025/6/1",
		"2025-06-01 10:30:00",
		"2025年6月1日",
		"2025年06月01日",
	}
	for _, s := range valid {
		d := ParseDate(s)
		if d == nil {
			t.Errorf("ParseDate(%q) = nil, want date", s)
			continue
		}
		if d.Year() != 2025 || int(d.Month()) != 6 || d.Day() != 1 {
			t.Errorf("ParseDate(%q) = %v, want 2025-06-01", s, d)
		}
	}

	invalid := []string{"", "6月", "not a date", "2025年13月1日"}
	for _, s := range invalid {
		if d := ParseDate(s); d != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", s, d)
		}
	}
}

func TestExtractSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sku  string
		want string
	}{
		{"DRESS-XXXL-RED", "3XL"},
		{"DRESS-XXL", "2XL"},
		{"dress-xl-01", "XL"},
		{"T恤-M款", "M"},
		{"裤装-38-蓝", "码38"},
		{"衬衫-175", "身高175"},
		{"BAG-ONE", "标准"},
		{"", SizeUnspecified},
	}

	for _, tt := range tests {
		if got := ExtractSize(tt.sku); got != tt.want {
			t.Errorf("ExtractSize(%q) = %q, want %q", tt.sku, got, tt.want)
		}
	}
}
