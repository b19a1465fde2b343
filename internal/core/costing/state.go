package costing

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// 新配方的預設值
const (
	DefaultBatchYield   = 12
	DefaultProfitMargin = 50
	DefaultHourlyRate   = 15
	DefaultHoursSpent   = 1
)

// DefaultRecipeNames 預設的配方分頁
var DefaultRecipeNames = []string{
	"Cinnamon Rolls",
	"Cupcakes",
	"Breads",
	"Pastries",
	"Banana Bread",
}

// NewID 產生新的紀錄識別碼
func NewID() string {
	return uuid.New().String()
}

// Settings 配方的批次設定
type Settings struct {
	BatchYield   int     `json:"batchYield"`
	ProfitMargin float64 `json:"profitMargin"`
	HourlyRate   float64 `json:"hourlyRate"`
	HoursSpent   float64 `json:"hoursSpent"`
}

// Validate 驗證批次設定：產量至少 1，其餘為非負有限數
func (s Settings) Validate() error {
	if s.BatchYield < 1 {
		return fmt.Errorf("batchYield must be at least 1, got %d", s.BatchYield)
	}
	checks := []struct {
		name  string
		value float64
	}{
		{"profitMargin", s.ProfitMargin},
		{"hourlyRate", s.HourlyRate},
		{"hoursSpent", s.HoursSpent},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || c.value < 0 {
			return fmt.Errorf("%s must be a non-negative number, got %v", c.name, c.value)
		}
	}
	return nil
}

// RecipeState 單一配方的完整狀態；所有修改方法都回傳新值，不改動接收者
type RecipeState struct {
	Ingredients  []Ingredient `json:"ingredients" msgpack:"ingredients"`
	Packaging    []Packaging  `json:"packaging" msgpack:"packaging"`
	BatchYield   int          `json:"batchYield" msgpack:"batchYield"`
	ProfitMargin float64      `json:"profitMargin" msgpack:"profitMargin"`
	HourlyRate   float64      `json:"hourlyRate" msgpack:"hourlyRate"`
	HoursSpent   float64      `json:"hoursSpent" msgpack:"hoursSpent"`
}

// DefaultRecipeState 新配方的預設狀態
func DefaultRecipeState() RecipeState {
	return RecipeState{
		Ingredients:  []Ingredient{},
		Packaging:    []Packaging{},
		BatchYield:   DefaultBatchYield,
		ProfitMargin: DefaultProfitMargin,
		HourlyRate:   DefaultHourlyRate,
		HoursSpent:   DefaultHoursSpent,
	}
}

// Clone 深拷貝
func (s RecipeState) Clone() RecipeState {
	out := s
	out.Ingredients = append(make([]Ingredient, 0, len(s.Ingredients)), s.Ingredients...)
	out.Packaging = append(make([]Packaging, 0, len(s.Packaging)), s.Packaging...)
	return out
}

// Settings 取出批次設定
func (s RecipeState) Settings() Settings {
	return Settings{
		BatchYield:   s.BatchYield,
		ProfitMargin: s.ProfitMargin,
		HourlyRate:   s.HourlyRate,
		HoursSpent:   s.HoursSpent,
	}
}

// WithSettings 套用批次設定
func (s RecipeState) WithSettings(set Settings) RecipeState {
	out := s.Clone()
	out.BatchYield = set.BatchYield
	out.ProfitMargin = set.ProfitMargin
	out.HourlyRate = set.HourlyRate
	out.HoursSpent = set.HoursSpent
	return out
}

// NewIngredient 以預設值建立食材
func NewIngredient(category Category) Ingredient {
	if !category.Valid() {
		category = CategoryDry
	}
	return Ingredient{
		ID:               NewID(),
		Name:             "",
		Category:         category,
		PurchasePrice:    0,
		PurchaseQuantity: "1",
		PurchaseUnit:     Kilogram,
		RecipeQuantity:   "0",
		RecipeUnit:       Gram,
	}
}

// NewPackaging 以預設值建立包材，使用量預設為批次產量
func NewPackaging(batchYield int) Packaging {
	return Packaging{
		ID:               NewID(),
		Name:             "",
		PurchasePrice:    0,
		PurchaseQuantity: "1",
		QuantityUsed:     QuantityOf(float64(batchYield)),
	}
}

// WithIngredients 依序附加食材
func (s RecipeState) WithIngredients(ings ...Ingredient) RecipeState {
	out := s.Clone()
	out.Ingredients = append(out.Ingredients, ings...)
	return out
}

// FindIngredient 依識別碼尋找食材
func (s RecipeState) FindIngredient(id string) (Ingredient, bool) {
	for _, ing := range s.Ingredients {
		if ing.ID == id {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// UpdateIngredient 修改指定食材，識別碼不可變
func (s RecipeState) UpdateIngredient(id string, fn func(*Ingredient)) (RecipeState, bool) {
	out := s.Clone()
	for i := range out.Ingredients {
		if out.Ingredients[i].ID == id {
			fn(&out.Ingredients[i])
			out.Ingredients[i].ID = id
			return out, true
		}
	}
	return s, false
}

// WithoutIngredient 移除指定食材
func (s RecipeState) WithoutIngredient(id string) (RecipeState, bool) {
	out := s.Clone()
	for i := range out.Ingredients {
		if out.Ingredients[i].ID == id {
			out.Ingredients = append(out.Ingredients[:i], out.Ingredients[i+1:]...)
			return out, true
		}
	}
	return s, false
}

// IngredientsByCategory 依分類篩選，保留插入順序
func (s RecipeState) IngredientsByCategory(c Category) []Ingredient {
	out := make([]Ingredient, 0)
	for _, ing := range s.Ingredients {
		if ing.Category == c {
			out = append(out, ing)
		}
	}
	return out
}

// WithPackaging 依序附加包材
func (s RecipeState) WithPackaging(items ...Packaging) RecipeState {
	out := s.Clone()
	out.Packaging = append(out.Packaging, items...)
	return out
}

// FindPackaging 依識別碼尋找包材
func (s RecipeState) FindPackaging(id string) (Packaging, bool) {
	for _, p := range s.Packaging {
		if p.ID == id {
			return p, true
		}
	}
	return Packaging{}, false
}

// UpdatePackaging 修改指定包材，識別碼不可變
func (s RecipeState) UpdatePackaging(id string, fn func(*Packaging)) (RecipeState, bool) {
	out := s.Clone()
	for i := range out.Packaging {
		if out.Packaging[i].ID == id {
			fn(&out.Packaging[i])
			out.Packaging[i].ID = id
			return out, true
		}
	}
	return s, false
}

// WithoutPackaging 移除指定包材
func (s RecipeState) WithoutPackaging(id string) (RecipeState, bool) {
	out := s.Clone()
	for i := range out.Packaging {
		if out.Packaging[i].ID == id {
			out.Packaging = append(out.Packaging[:i], out.Packaging[i+1:]...)
			return out, true
		}
	}
	return s, false
}

// Migrate 補齊舊資料：缺少或未知分類的食材預設為 dry，nil 集合改為空集合
func (s RecipeState) Migrate() RecipeState {
	out := s.Clone()
	for i := range out.Ingredients {
		if !out.Ingredients[i].Category.Valid() {
			out.Ingredients[i].Category = CategoryDry
		}
	}
	return out
}

// Book 配方名稱到配方狀態的對應，每個配方各自獨立
type Book map[string]RecipeState

// NewBook 以相同的初始狀態建立多個配方
func NewBook(names []string, initial RecipeState) Book {
	b := make(Book, len(names))
	for _, name := range names {
		b[name] = initial.Clone()
	}
	return b
}

// Names 依字母排序的配方名稱
func (b Book) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get 取得配方
func (b Book) Get(name string) (RecipeState, bool) {
	s, ok := b[name]
	return s, ok
}

// With 回傳替換了指定配方的新 Book
func (b Book) With(name string, state RecipeState) Book {
	out := b.Clone()
	out[name] = state.Clone()
	return out
}

// Clone 深拷貝
func (b Book) Clone() Book {
	out := make(Book, len(b))
	for name, s := range b {
		out[name] = s.Clone()
	}
	return out
}

// Migrate 對所有配方套用資料遷移
func (b Book) Migrate() Book {
	out := make(Book, len(b))
	for name, s := range b {
		out[name] = s.Migrate()
	}
	return out
}
