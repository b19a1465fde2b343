package importer

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"bakery-pricing/internal/core/ai/provider"
	"bakery-pricing/internal/core/costing"
	"bakery-pricing/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	content string
	err     error
	prompt  string
}

func (f *fakeGenerator) ProcessRequest(_ context.Context, prompt string) (*provider.Response, error) {
	f.prompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Response{Content: f.content}, nil
}

func TestParseRecipeText(t *testing.T) {
	gen := &fakeGenerator{content: "```json\n" + `[
		{"name":"Flour","category":"dry","recipeQuantity":"2 1/4","recipeUnit":"Cups","purchaseQuantity":"5","purchaseUnit":"lbs"},
		{"name":"Eggs","category":"WET","recipeQuantity":2,"recipeUnit":"large"},
		{"name":"Chocolate chips","category":"additive","recipeQuantity":"1","recipeUnit":"cup"},
		{"name":"","category":"spice","recipeQuantity":null,"recipeUnit":"Tablespoons","purchaseQuantity":1.5}
	]` + "\n```"}

	ings, err := New(gen).ParseRecipeText(context.Background(), "2 1/4 cups flour, 2 eggs")
	require.NoError(t, err)
	require.Len(t, ings, 4)

	assert.Contains(t, gen.prompt, "2 1/4 cups flour, 2 eggs")

	flour := ings[0]
	assert.Equal(t, "Flour", flour.Name)
	assert.Equal(t, costing.CategoryDry, flour.Category)
	assert.Equal(t, costing.Quantity("2 1/4"), flour.RecipeQuantity)
	assert.Equal(t, costing.Cup, flour.RecipeUnit)
	assert.Equal(t, costing.Quantity("5"), flour.PurchaseQuantity)
	assert.Equal(t, costing.Pound, flour.PurchaseUnit)
	assert.Equal(t, 0.0, flour.PurchasePrice)
	assert.NotEmpty(t, flour.ID)

	eggs := ings[1]
	assert.Equal(t, costing.CategoryWet, eggs.Category)
	assert.Equal(t, costing.Quantity("2"), eggs.RecipeQuantity)
	assert.Equal(t, costing.Piece, eggs.RecipeUnit)
	assert.Equal(t, costing.Quantity("1"), eggs.PurchaseQuantity)
	assert.Equal(t, costing.Piece, eggs.PurchaseUnit)

	chips := ings[2]
	assert.Equal(t, costing.CategoryAdditive, chips.Category)
	assert.Equal(t, costing.Cup, chips.PurchaseUnit)

	unknown := ings[3]
	assert.Equal(t, "Unknown", unknown.Name)
	assert.Equal(t, costing.CategoryDry, unknown.Category)
	assert.Equal(t, costing.Quantity("0"), unknown.RecipeQuantity)
	assert.Equal(t, costing.Tablespoon, unknown.RecipeUnit)
	assert.Equal(t, costing.Quantity("1.5"), unknown.PurchaseQuantity)

	ids := map[string]bool{}
	for _, ing := range ings {
		ids[ing.ID] = true
	}
	assert.Len(t, ids, 4)
}

func TestParseRecipeText_MissingUnits(t *testing.T) {
	gen := &fakeGenerator{content: `[{"name":"Salt","category":"dry","recipeQuantity":"1/2"}]`}

	ings, err := New(gen).ParseRecipeText(context.Background(), "a pinch of salt")
	require.NoError(t, err)
	require.Len(t, ings, 1)

	assert.Equal(t, costing.Piece, ings[0].RecipeUnit)
	assert.Equal(t, costing.Kilogram, ings[0].PurchaseUnit)
}

func TestParseRecipeText_UnquotedKeys(t *testing.T) {
	gen := &fakeGenerator{content: `Here you go: [{name: "Milk", category: "wet", recipeQuantity: "1", recipeUnit: "cup"}]`}

	ings, err := New(gen).ParseRecipeText(context.Background(), "1 cup milk")
	require.NoError(t, err)
	require.Len(t, ings, 1)
	assert.Equal(t, "Milk", ings[0].Name)
	assert.Equal(t, costing.CategoryWet, ings[0].Category)
}

func TestParseRecipeText_EmptyArray(t *testing.T) {
	ings, err := New(&fakeGenerator{content: "[]"}).ParseRecipeText(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, ings)
}

func TestParseRecipeText_Errors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		gen := &fakeGenerator{content: "[]"}
		_, err := New(gen).ParseRecipeText(context.Background(), "   ")
		assert.True(t, common.IsValidationError(err))
		assert.Empty(t, gen.prompt)
	})

	t.Run("provider failure", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("timeout")}
		ings, err := New(gen).ParseRecipeText(context.Background(), "2 eggs")
		assert.Nil(t, ings)
		assert.ErrorIs(t, err, common.ErrAIServiceError)

		status, resp := common.ToErrorResponse(err)
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, common.ImportRetryMessage, resp.Message)
	})

	t.Run("no array", func(t *testing.T) {
		_, err := New(&fakeGenerator{content: "sorry, I cannot help"}).ParseRecipeText(context.Background(), "2 eggs")
		assert.ErrorIs(t, err, common.ErrImportFailed)
	})

	t.Run("malformed array", func(t *testing.T) {
		_, err := New(&fakeGenerator{content: `[{"name": ]`}).ParseRecipeText(context.Background(), "2 eggs")
		assert.ErrorIs(t, err, common.ErrImportFailed)
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(`1 cup "whole" milk`)
	assert.Contains(t, prompt, `"1 cup \"whole\" milk"`)
	assert.Contains(t, prompt, "g, kg, oz, lb, ml, l, cup, tbsp, tsp, pcs")
}

func TestParseRecipeText_WrappedObject(t *testing.T) {
	gen := &fakeGenerator{content: `{"ingredients":[{"name":"Sugar","category":"dry","recipeQuantity":"1/2","recipeUnit":"cup"}]}`}

	ings, err := New(gen).ParseRecipeText(context.Background(), "1/2 cup sugar")
	require.NoError(t, err)
	require.Len(t, ings, 1)
	assert.Equal(t, "Sugar", ings[0].Name)
	assert.Equal(t, costing.Quantity("1/2"), ings[0].RecipeQuantity)
}
