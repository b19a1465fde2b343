package costing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity 使用者輸入的數量表達式，保留原始文字（例如 "1 1/2"），僅在計算時轉為數值
type Quantity string

// QuantityOf 以數值建立數量表達式
func QuantityOf(f float64) Quantity {
	return Quantity(strconv.FormatFloat(f, 'f', -1, 64))
}

// String 回傳原始文字
func (q Quantity) String() string {
	return string(q)
}

// Float64 將數量表達式轉為數值，無法解析時回傳 0
func (q Quantity) Float64() float64 {
	return ParseQuantity(string(q))
}

// UnmarshalJSON 同時接受字串與數字，數字保留其原始字面值
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*q = Quantity(n.String())
	return nil
}

// ParseQuantity 解析整數、小數、分數（"1/4"）與帶分數（"1 1/2"），任何無法解析的輸入回傳 0
func ParseQuantity(input string) float64 {
	clean := strings.TrimSpace(input)
	if clean == "" {
		return 0
	}

	// 帶分數："1 1/2"
	if strings.ContainsAny(clean, " \t") {
		if parts := strings.Fields(clean); len(parts) == 2 {
			return finiteOrZero(ParseQuantity(parts[0]) + ParseQuantity(parts[1]))
		}
	}

	// 分數："1/4"
	if num, den, ok := strings.Cut(clean, "/"); ok {
		numerator, nerr := parseDecimal(num)
		denominator, derr := parseDecimal(den)
		if nerr == nil && derr == nil && denominator != 0 {
			return finiteOrZero(numerator / denominator)
		}
	}

	value, err := parseDecimal(clean)
	if err != nil {
		return 0
	}
	return value
}

// parseDecimal 嚴格解析十進位數字，拒絕非有限值
func parseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
