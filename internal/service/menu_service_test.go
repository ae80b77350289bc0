package service

import (
	"context"
	"testing"

	"cost-calc-api/pkg/costing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuService_CreateStartsUncosted(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	v, err := e.menus.Create(ctx, e.owner, MenuInput{Name: " ramen ", SalesPrice: 900})
	require.NoError(t, err)
	assert.Equal(t, "ramen", v.Name)
	assert.Equal(t, 900.0, v.SalesPrice)
	assert.Zero(t, v.TotalCost)
	assert.Equal(t, 900.0, v.GrossProfit)
	assert.Zero(t, v.CostRate)
	assert.Equal(t, costing.ToneGood, v.Evaluation.Tone)

	free, err := e.menus.Create(ctx, e.owner, MenuInput{Name: "water"})
	require.NoError(t, err)
	assert.Equal(t, costing.ToneNone, free.Evaluation.Tone)
	assert.Nil(t, free.Evaluation.DisplayRate)

	_, err = e.menus.Create(ctx, e.owner, MenuInput{SalesPrice: 100})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMenuService_UpdateRecomputesMetrics(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	pork, err := e.materials.Create(ctx, e.owner, MaterialInput{Name: "pork", PurchasePrice: 1000, PurchaseQuantity: 500, PurchaseUnit: "g"})
	require.NoError(t, err)
	menu, err := e.menus.Create(ctx, e.owner, MenuInput{Name: "stew", SalesPrice: 1000})
	require.NoError(t, err)
	_, err = e.recipes.Add(ctx, e.owner, menu.ID, RecipeInput{MaterialID: pork.ID, UsageAmount: num(100), YieldRate: num(90)})
	require.NoError(t, err)

	stored := e.storedMenu(t, menu.ID)
	assert.InDelta(t, 222.2222, stored.TotalCost, 1e-3)
	assert.InDelta(t, 22.2222, stored.CostRate, 1e-3)

	e.pub.reset()
	v, err := e.menus.Update(ctx, e.owner, menu.ID, MenuInput{Name: "stew", SalesPrice: 500})
	require.NoError(t, err)
	assert.InDelta(t, 222.2222, v.TotalCost, 1e-3)
	assert.InDelta(t, 277.7778, v.GrossProfit, 1e-3)
	assert.InDelta(t, 44.4444, v.CostRate, 1e-3)
	assert.Equal(t, costing.ToneDanger, v.Evaluation.Tone)
	require.NotNil(t, v.Evaluation.Label)
	assert.Equal(t, "high", *v.Evaluation.Label)
	assert.Equal(t, []string{"menus:updated"}, e.pub.tables())

	_, err = e.menus.Update(ctx, e.owner, uuid.New(), MenuInput{Name: "x"})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestMenuService_GetCostsLinesLive(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	milk, err := e.materials.Create(ctx, e.owner, MaterialInput{Name: "milk", PurchasePrice: 200, PurchaseQuantity: 1, PurchaseUnit: "l"})
	require.NoError(t, err)
	menu, err := e.menus.Create(ctx, e.owner, MenuInput{Name: "latte", SalesPrice: 500})
	require.NoError(t, err)
	_, err = e.recipes.Add(ctx, e.owner, menu.ID, RecipeInput{MaterialID: milk.ID, UsageAmount: num(0.2), UsageUnit: "L"})
	require.NoError(t, err)

	d, err := e.menus.Get(ctx, e.owner, menu.ID)
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.InDelta(t, 0.2, d.Lines[0].UnitPrice, 1e-12)
	assert.InDelta(t, 40, d.Lines[0].LineCost, 1e-9)
	assert.InDelta(t, 40, d.TotalCost, 1e-9)
	assert.InDelta(t, 8, d.CostRate, 1e-9)
	require.NotNil(t, d.Evaluation.DisplayRate)
	assert.Equal(t, "8.0", *d.Evaluation.DisplayRate)

	_, err = e.menus.Get(ctx, uuid.New(), menu.ID)
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestMenuService_DeleteRemovesLines(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	rice, err := e.materials.Create(ctx, e.owner, MaterialInput{Name: "rice", PurchasePrice: 2000, PurchaseQuantity: 5, PurchaseUnit: "kg"})
	require.NoError(t, err)
	menu, err := e.menus.Create(ctx, e.owner, MenuInput{Name: "onigiri", SalesPrice: 200})
	require.NoError(t, err)
	line, err := e.recipes.Add(ctx, e.owner, menu.ID, RecipeInput{MaterialID: rice.ID, UsageAmount: num(120)})
	require.NoError(t, err)

	require.NoError(t, e.menus.Delete(ctx, e.owner, menu.ID))

	_, err = e.menus.Get(ctx, e.owner, menu.ID)
	assert.ErrorIs(t, err, ErrMenuNotFound)
	assert.ErrorIs(t, e.recipes.Delete(ctx, e.owner, line.ID), ErrRecipeNotFound)
	assert.ErrorIs(t, e.menus.Delete(ctx, e.owner, menu.ID), ErrMenuNotFound)

	// the material survives its menu
	_, err = e.materials.Get(ctx, e.owner, rice.ID)
	assert.NoError(t, err)
}

func TestMenuService_RecalculateAndList(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.menus.Create(ctx, e.owner, MenuInput{Name: "a", SalesPrice: 100})
	require.NoError(t, err)
	b, err := e.menus.Create(ctx, e.owner, MenuInput{Name: "b", SalesPrice: 100})
	require.NoError(t, err)

	views, err := e.menus.List(ctx, e.owner)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	v, err := e.menus.Recalculate(ctx, e.owner, b.ID)
	require.NoError(t, err)
	assert.Zero(t, v.TotalCost)

	_, err = e.menus.Recalculate(ctx, e.owner, uuid.New())
	assert.ErrorIs(t, err, ErrMenuNotFound)
}
