package costing

import (
	"fmt"
	"strings"
)

// Unit 支援的計量單位
type Unit string

const (
	Gram       Unit = "g"
	Kilogram   Unit = "kg"
	Ounce      Unit = "oz"
	Pound      Unit = "lb"
	Millilitre Unit = "ml"
	Litre      Unit = "l"
	Cup        Unit = "cup"
	Tablespoon Unit = "tbsp"
	Teaspoon   Unit = "tsp"
	Piece      Unit = "pcs"
)

// Family 單位家族
type Family string

const (
	FamilyMass   Family = "mass"
	FamilyVolume Family = "volume"
	FamilyCount  Family = "count"
)

// units 依顯示順序排列
var units = []Unit{Gram, Kilogram, Ounce, Pound, Millilitre, Litre, Cup, Tablespoon, Teaspoon, Piece}

// conversionFactors 換算為基準單位（質量為克、容量為毫升）的係數；pcs 沒有係數
var conversionFactors = map[Unit]float64{
	Gram:       1,
	Kilogram:   1000,
	Ounce:      28.3495,
	Pound:      453.592,
	Millilitre: 1,
	Litre:      1000,
	Cup:        236.588,
	Tablespoon: 14.787,
	Teaspoon:   4.929,
}

var unitLabels = map[Unit]string{
	Gram:       "gram/s",
	Kilogram:   "kilogram/s",
	Ounce:      "ounce/s",
	Pound:      "pound/s",
	Millilitre: "millilitre/s",
	Litre:      "litre/s",
	Cup:        "cup/s",
	Tablespoon: "tablespoon/s",
	Teaspoon:   "teaspoon/s",
	Piece:      "piece/s",
}

var unitFamilies = map[Unit]Family{
	Gram:       FamilyMass,
	Kilogram:   FamilyMass,
	Ounce:      FamilyMass,
	Pound:      FamilyMass,
	Millilitre: FamilyVolume,
	Litre:      FamilyVolume,
	Cup:        FamilyVolume,
	Tablespoon: FamilyVolume,
	Teaspoon:   FamilyVolume,
	Piece:      FamilyCount,
}

// unitSynonyms AI 匯入時使用的同義詞（小寫）
var unitSynonyms = map[string]Unit{
	"g":           Gram,
	"gram":        Gram,
	"grams":       Gram,
	"kg":          Kilogram,
	"kilogram":    Kilogram,
	"kilo":        Kilogram,
	"oz":          Ounce,
	"ounce":       Ounce,
	"ounces":      Ounce,
	"lb":          Pound,
	"lbs":         Pound,
	"pound":       Pound,
	"pounds":      Pound,
	"ml":          Millilitre,
	"milliliter":  Millilitre,
	"millilitre":  Millilitre,
	"l":           Litre,
	"liter":       Litre,
	"liters":      Litre,
	"litre":       Litre,
	"litres":      Litre,
	"cup":         Cup,
	"cups":        Cup,
	"tbsp":        Tablespoon,
	"tablespoon":  Tablespoon,
	"tablespoons": Tablespoon,
	"tsp":         Teaspoon,
	"teaspoon":    Teaspoon,
	"teaspoons":   Teaspoon,
}

// Units 回傳所有支援的單位
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// Valid 是否為支援的單位
func (u Unit) Valid() bool {
	_, ok := unitFamilies[u]
	return ok
}

// Factor 回傳換算為基準單位的係數，pcs 與未知單位回傳 (0, false)
func (u Unit) Factor() (float64, bool) {
	f, ok := conversionFactors[u]
	return f, ok && f != 0
}

// Family 回傳單位家族，未知單位回傳空字串
func (u Unit) Family() Family {
	return unitFamilies[u]
}

// Label 顯示用名稱
func (u Unit) Label() string {
	if l, ok := unitLabels[u]; ok {
		return l
	}
	return string(u)
}

// IsMass 是否為質量單位
func (u Unit) IsMass() bool { return u.Family() == FamilyMass }

// IsVolume 是否為容量單位
func (u Unit) IsVolume() bool { return u.Family() == FamilyVolume }

// ParseUnit 嚴格解析單位代碼
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.TrimSpace(s))
	if !u.Valid() {
		return "", fmt.Errorf("unsupported unit %q", s)
	}
	return u, nil
}

// NormalizeUnit 以同義詞（不分大小寫）對應到標準單位，無法辨識時回傳 pcs
func NormalizeUnit(s string) Unit {
	if u, ok := unitSynonyms[strings.ToLower(strings.TrimSpace(s))]; ok {
		return u
	}
	return Piece
}
