package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount 金额字段：兼容 JSON 数字、数字字符串与 null
// 无法解析的值按 0 处理，不使请求失败
type Amount float64

// ParseAmount 解析表格 / 表单中的金额文本（允许千分位逗号）
func ParseAmount(s string) Amount {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

// finite NaN / ±Inf 一律按 0 处理
func finite(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Amount(f)
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*a = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*a = 0
			return nil
		}
		*a = ParseAmount(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*a = 0
		return nil
	}
	*a = finite(f)
	return nil
}

// Float64 返回数值
func (a Amount) Float64() float64 { return float64(a) }
