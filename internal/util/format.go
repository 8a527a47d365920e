package util

import (
	"fmt"
	"strings"
)

// FormatShare 格式化占比（无符号百分数）
func FormatShare(value float64) string {
	return fmt.Sprintf("%.2f%%", value*100)
}

// FormatSignedPercent 格式化变化率（带符号百分数）
func FormatSignedPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value*100)
}

// FormatCurrency 格式化金额（千分位，两位小数）
func FormatCurrency(value float64) string {
	s := fmt.Sprintf("%.2f", value)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)
	return b.String()
}
