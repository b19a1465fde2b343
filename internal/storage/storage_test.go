package storage

import (
	"context"
	"path/filepath"
	"testing"

	"bakery-pricing/internal/core/costing"
	"bakery-pricing/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBook() costing.Book {
	breads := costing.DefaultRecipeState().
		WithIngredients(
			costing.Ingredient{
				ID: "flour", Name: "Flour", Category: costing.CategoryDry,
				PurchasePrice: 2, PurchaseQuantity: "1", PurchaseUnit: costing.Kilogram,
				RecipeQuantity: "500", RecipeUnit: costing.Gram,
			},
			costing.Ingredient{
				ID: "milk", Name: "Milk", Category: costing.CategoryWet,
				PurchasePrice: 1.2, PurchaseQuantity: "1", PurchaseUnit: costing.Litre,
				RecipeQuantity: "1 1/2", RecipeUnit: costing.Cup,
			},
		).
		WithPackaging(costing.Packaging{ID: "box", Name: "Box", PurchasePrice: 10, PurchaseQuantity: "50", QuantityUsed: "12"})

	book := costing.NewBook([]string{"Cupcakes"}, costing.DefaultRecipeState())
	return book.With("Breads", breads)
}

func assertBooksEqual(t *testing.T, want, got costing.Book) {
	t.Helper()
	require.ElementsMatch(t, want.Names(), got.Names())
	for _, name := range want.Names() {
		assert.Equal(t, want[name], got[name], name)
		assert.Equal(t, costing.Summarize(want[name]), costing.Summarize(got[name]), name)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	book, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, book)

	want := sampleBook()
	require.NoError(t, store.Save(ctx, want))

	// 儲存後修改原值不影響已存資料
	want["Breads"].Ingredients[0].Name = "Changed"

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Flour", got["Breads"].Ingredients[0].Name)
	assert.NoError(t, store.Ping(ctx))
	assert.NoError(t, store.Close())
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "bakery.db")

	store, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)

	book, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, book)

	want := sampleBook()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertBooksEqual(t, want, got)

	// 覆寫會移除不在快照內的配方
	require.NoError(t, store.Save(ctx, costing.NewBook([]string{"Pastries"}, costing.DefaultRecipeState())))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pastries"}, got.Names())

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Close())

	// 重新開啟時遷移不會重複執行
	reopened, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pastries"}, got.Names())
}

func TestSQLiteStore_MigratesMissingCategory(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "bakery.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.db.ExecContext(ctx,
		`INSERT INTO recipes (name, position, state, updated_at) VALUES (?, 0, ?, '')`,
		"Breads",
		`{"ingredients":[{"id":"a","name":"Flour","purchasePrice":2,"purchaseQuantity":"1","purchaseUnit":"kg","recipeQuantity":"500","recipeUnit":"g"}],"packaging":[],"batchYield":12,"profitMargin":50,"hourlyRate":15,"hoursSpent":1}`,
	)
	require.NoError(t, err)

	book, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, costing.CategoryDry, book["Breads"].Ingredients[0].Category)
}

func TestSnapshotCodec(t *testing.T) {
	want := sampleBook()

	data, err := EncodeSnapshot(want)
	require.NoError(t, err)

	got, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assertBooksEqual(t, want, got)
}

func TestDecodeSnapshot_LegacyJSON(t *testing.T) {
	legacy := []byte(`{
		"Cinnamon Rolls": {
			"ingredients": [
				{"id":"1","name":"Butter","purchasePrice":5,"purchaseQuantity":"1","purchaseUnit":"lb","recipeQuantity":"1/2","recipeUnit":"cup"},
				{"id":"2","name":"Nuts","category":"additive","purchasePrice":8,"purchaseQuantity":"1","purchaseUnit":"kg","recipeQuantity":"100","recipeUnit":"g"}
			],
			"packaging": [],
			"batchYield": 12, "profitMargin": 50, "hourlyRate": 15, "hoursSpent": 1
		}
	}`)

	book, err := DecodeSnapshot(legacy)
	require.NoError(t, err)

	rolls := book["Cinnamon Rolls"]
	require.Len(t, rolls.Ingredients, 2)
	assert.Equal(t, costing.CategoryDry, rolls.Ingredients[0].Category)
	assert.Equal(t, costing.CategoryAdditive, rolls.Ingredients[1].Category)
}

func TestDecodeSnapshot_Empty(t *testing.T) {
	book, err := DecodeSnapshot(nil)
	require.NoError(t, err)
	assert.Empty(t, book)

	_, err = DecodeSnapshot([]byte{0xc1})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	store, err := New(ctx, config.StorageConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = New(ctx, config.StorageConfig{Backend: config.BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "b.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.Close())

	_, err = New(ctx, config.StorageConfig{Backend: "mongo"})
	assert.Error(t, err)
}
