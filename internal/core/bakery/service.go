// Package bakery coordinates the recipe book, its store and the AI importer.
package bakery

import (
	"context"
	"sort"
	"sync"

	"bakery-pricing/internal/core/costing"
	"bakery-pricing/internal/infrastructure/config"
	"bakery-pricing/internal/metrics"
	"bakery-pricing/internal/pkg/common"
	"bakery-pricing/internal/storage"

	"go.uber.org/zap"
)

// RecipeImporter 將食譜文字轉為食材
type RecipeImporter interface {
	ParseRecipeText(ctx context.Context, text string) ([]costing.Ingredient, error)
}

// RecipeView 配方狀態與其成本彙總
type RecipeView struct {
	Name    string              `json:"name"`
	State   costing.RecipeState `json:"state"`
	Summary costing.Summary     `json:"summary"`
}

// Service 配方服務：每次修改都會讀取、套用並寫回整份快照
type Service struct {
	store    storage.Store
	importer RecipeImporter
	names    []string
	defaults costing.RecipeState
	mu       sync.Mutex
}

// NewService 創建配方服務
func NewService(store storage.Store, importer RecipeImporter, cfg config.PricingConfig) *Service {
	defaults := costing.DefaultRecipeState().WithSettings(costing.Settings{
		BatchYield:   cfg.BatchYield,
		ProfitMargin: cfg.ProfitMargin,
		HourlyRate:   cfg.HourlyRate,
		HoursSpent:   cfg.HoursSpent,
	})
	if err := defaults.Settings().Validate(); err != nil {
		defaults = costing.DefaultRecipeState()
	}

	names := cfg.Recipes
	if len(names) == 0 {
		names = costing.DefaultRecipeNames
	}

	return &Service{
		store:    store,
		importer: importer,
		names:    append([]string(nil), names...),
		defaults: defaults,
	}
}

// Init 確保每個設定的配方都存在，缺少的以預設值建立
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.load(ctx)
	if err != nil {
		return err
	}

	seeded := 0
	for _, name := range s.names {
		if _, ok := book[name]; !ok {
			book[name] = s.defaults.Clone()
			seeded++
		}
	}

	if seeded > 0 {
		if err := s.save(ctx, book); err != nil {
			return err
		}
	}

	common.LogInfo("配方資料已載入", zap.Int("recipes", len(book)), zap.Int("seeded", seeded))
	return nil
}

// RecipeNames 依設定順序列出配方，其餘配方依字母排序接在後面
func (s *Service) RecipeNames(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	book, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(book))
	seen := make(map[string]bool, len(book))
	for _, name := range s.names {
		if _, ok := book[name]; ok {
			out = append(out, name)
			seen[name] = true
		}
	}
	rest := make([]string, 0)
	for name := range book {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...), nil
}

// Recipe 取得配方與成本彙總
func (s *Service) Recipe(ctx context.Context, name string) (*RecipeView, error) {
	s.mu.Lock()
	book, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	state, ok := book.Get(name)
	if !ok {
		return nil, common.ErrRecipeNotFound
	}
	return &RecipeView{Name: name, State: state, Summary: Calculate(state)}, nil
}

// UpdateSettings 更新批次設定
func (s *Service) UpdateSettings(ctx context.Context, name string, settings costing.Settings) (*RecipeView, error) {
	if err := settings.Validate(); err != nil {
		return nil, common.NewValidationError(err.Error())
	}

	state, err := s.mutate(ctx, name, func(st costing.RecipeState) (costing.RecipeState, error) {
		return st.WithSettings(settings), nil
	})
	if err != nil {
		return nil, err
	}
	return &RecipeView{Name: name, State: state, Summary: Calculate(state)}, nil
}

// AddIngredient 新增一筆預設食材
func (s *Service) AddIngredient(ctx context.Context, name string, category costing.Category) (costing.Ingredient, error) {
	ing := costing.NewIngredient(category)
	_, err := s.mutate(ctx, name, func(st costing.RecipeState) (costing.RecipeState, error) {
		return st.WithIngredients(ing), nil
	})
	if err != nil {
		return costing.Ingredient{}, err
	}
	return ing, nil
}

// UpdateIngredient 部分更新食材
func (s *Service) UpdateIngredient(ctx context.Context, name, id string, patch costing.IngredientPatch) (costing.Ingredient, error) {
	if err := patch.Validate(); err != nil {
		return costing.Ingredient{}, common.NewValidationError(err.Error())
	}

	state, err := s.mutate(ctx, name, func(st costing.RecipeState) (costing.RecipeState, error) {
		next, ok := st.UpdateIngredient(id, patch.Apply)
		if !ok {
			return st, common.ErrRecordNotFound
		}
		return next, nil
	})
	if err != nil {
		return costing.Ingredient{}, err
	}

	ing, _ := state.FindIngredient(id)
	return ing, nil
}

// RemoveIngredient 刪除食材
func (s *Service) RemoveIngredient(ctx context.Context, name, id string) error {
	_, err := s.mutate(ctx, name, func(st costing.RecipeState) (costing.RecipeState, error) {
		next, ok := st.WithoutIngredient(id)
		if !ok {
			return st, common.ErrRecordNotFound
		}
		return next, nil
	})
	return err
}

// AddPackaging 新增一筆預設包材，使用量為目前的批次產量
func (s *Service) AddPackaging(ctx context.Context, name string) (costing.Packaging, error) {
	var item costing.Packaging
	_, err := s.mutate(ctx, name, func(st costing.RecipeState) (costing.RecipeState, error) {
		item = costing.NewPackaging(st.BatchYield)
		return st.WithPackaging(item), nil
	})
	if err != nil {
		return costing.Packaging{}, err
	}
	return item, nil
}

// UpdatePackaging 部分更新包材
func (s *Service) UpdatePackaging(ctx context.Context, name, id string, patch costing.PackagingPatch) (costing.Packaging, error) {
	if err := patch.Validate(); err != nil {
		return costing.Packaging{}, common.NewValidationError(err.Error())
	}

	state, err := s.mutate(ctx, name, func(st costing.RecipeState) (costing.RecipeState, error) {
		next, ok := st.UpdatePackaging(id, patch.Apply)
		if !ok {
			return st, common.ErrRecordNotFound
		}
		return next, nil
	})
	if err != nil {
		return costing.Packaging{}, err
	}

	item, _ := state.FindPackaging(id)
	return item, nil
}

// RemovePackaging 刪除包材
func (s *Service) RemovePackaging(ctx context.Context, name, id string) error {
	_, err := s.mutate(ctx, name, func(st costing.RecipeState) (costing.RecipeState, error) {
		next, ok := st.WithoutPackaging(id)
		if !ok {
			return st, common.ErrRecordNotFound
		}
		return next, nil
	})
	return err
}

// ImportRecipe 以 AI 解析食譜文字並附加到配方；解析失敗時配方保持不變
func (s *Service) ImportRecipe(ctx context.Context, name, text string) ([]costing.Ingredient, error) {
	// 先確認配方存在，避免無謂的 AI 呼叫
	if _, err := s.Recipe(ctx, name); err != nil {
		return nil, err
	}

	ings, err := s.importer.ParseRecipeText(ctx, text)
	if err != nil {
		return nil, err
	}

	if _, err := s.mutate(ctx, name, func(st costing.RecipeState) (costing.RecipeState, error) {
		return st.WithIngredients(ings...), nil
	}); err != nil {
		return nil, err
	}

	common.LogInfo("食譜已匯入", zap.String("recipe", name), zap.Int("ingredients_count", len(ings)))
	return ings, nil
}

// Calculate 計算彙總並記錄退化的明細數量
func Calculate(state costing.RecipeState) costing.Summary {
	summary := costing.Summarize(state)

	degraded := map[string]map[string]int{}
	for _, line := range summary.Ingredients {
		if line.Status != costing.StatusOK {
			countStatus(degraded, "ingredient", string(line.Status))
		}
	}
	for _, line := range summary.Packaging {
		if line.Status != costing.StatusOK {
			countStatus(degraded, "packaging", string(line.Status))
		}
	}
	metrics.RecordSummary(degraded)

	return summary
}

func countStatus(m map[string]map[string]int, kind, status string) {
	if m[kind] == nil {
		m[kind] = map[string]int{}
	}
	m[kind][status]++
}

// mutate 讀取快照、修改單一配方並寫回
func (s *Service) mutate(ctx context.Context, name string, fn func(costing.RecipeState) (costing.RecipeState, error)) (costing.RecipeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.load(ctx)
	if err != nil {
		return costing.RecipeState{}, err
	}

	state, ok := book.Get(name)
	if !ok {
		return costing.RecipeState{}, common.ErrRecipeNotFound
	}

	next, err := fn(state)
	if err != nil {
		return costing.RecipeState{}, err
	}

	if err := s.save(ctx, book.With(name, next)); err != nil {
		return costing.RecipeState{}, err
	}
	return next, nil
}

func (s *Service) load(ctx context.Context) (costing.Book, error) {
	book, err := s.store.Load(ctx)
	if err != nil {
		common.LogError("讀取配方失敗", zap.Error(err))
		return nil, common.ErrStorage.Wrap(err)
	}
	return book, nil
}

func (s *Service) save(ctx context.Context, book costing.Book) error {
	if err := s.store.Save(ctx, book); err != nil {
		common.LogError("儲存配方失敗", zap.Error(err))
		return common.ErrStorage.Wrap(err)
	}
	return nil
}

// Ready 檢查儲存後端
func (s *Service) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}
