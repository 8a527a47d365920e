package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var reSpaces = regexp.MustCompile(`\s+`)

// NormalizeColumnName 规范化列名，去除空格和换行等干扰字符
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", "")
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\t", "")
	return reSpaces.ReplaceAllString(name, "")
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// parseNumericCell 解析数值单元格
// 空单元格按 0 处理且视为成功；非空但无法解析返回 ok=false
func parseNumericCell(s string) (value float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	s = strings.ReplaceAll(s, ",", "") // 千分位
	s = strings.ReplaceAll(s, "￥", "")
	s = strings.ReplaceAll(s, "¥", "")
	s = strings.ReplaceAll(s, "％", "%")
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// dateLayouts 支持的日期格式
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"01-02-06",
}

var reCNDate = regexp.MustCompile(`^(\d{4})年0?(\d{1,2})月0?(\d{1,2})日?$`)

// ParseDate 解析日期单元格，解析失败返回 nil
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if m := reCNDate.FindStringSubmatch(s); len(m) == 4 {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			return &t
		}
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// 尺寸提取用的字母码，按长度从长到短匹配
var letterSizes = []struct {
	Pattern string
	Size    string
}{
	{"XXXL", "3XL"},
	{"XXL", "2XL"},
	{"XXS", "2XS"},
	{"XL", "XL"},
	{"XS", "XS"},
	{"L", "L"},
	{"M", "M"},
	{"S", "S"},
}

var (
	reNumericSize = regexp.MustCompile(`\b(2[0-9]|3[0-9]|4[0-6])\b`)
	heightCodes   = []string{"160", "165", "170", "175", "180", "185", "190"}
)

// ExtractSize 从 SKU 文本中提取尺寸信息
// 识别不出具体尺寸时返回“标准”，空白返回尺寸哨兵值
func ExtractSize(sku string) string {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return SizeUnspecified
	}

	upper := strings.ToUpper(sku)
	for _, ls := range letterSizes {
		if strings.Contains(upper, ls.Pattern) {
			return ls.Size
		}
	}

	if m := reNumericSize.FindStringSubmatch(upper); len(m) == 2 {
		return "码" + m[1]
	}

	for _, code := range heightCodes {
		if strings.Contains(upper, code) {
			return "身高" + code
		}
	}

	return "标准"
}

// formatDay 统一的日期展示格式
func formatDay(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}
