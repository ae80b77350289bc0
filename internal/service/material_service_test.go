package service

import (
	"context"
	"testing"

	"cost-calc-api/pkg/costing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialService_CreateNormalizesPurchase(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	m, err := e.materials.Create(ctx, e.owner, MaterialInput{
		Name:             " flour ",
		PurchasePrice:    1200,
		PurchaseQuantity: 1,
		PurchaseUnit:     "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, "flour", m.Name)
	assert.Equal(t, 1000.0, m.PurchaseQuantity)
	assert.Equal(t, costing.BaseGram, m.BaseUnit)
	assert.InDelta(t, 1.2, m.CalculatedUnitPrice, 1e-12)
	assert.Equal(t, m.UnitPrice(), m.CalculatedUnitPrice)
	assert.Equal(t, []string{"materials:created"}, e.pub.tables())

	milk, err := e.materials.Create(ctx, e.owner, MaterialInput{Name: "milk", PurchasePrice: 250, PurchaseQuantity: 1, PurchaseUnit: "L"})
	require.NoError(t, err)
	assert.Equal(t, costing.BaseMilliliter, milk.BaseUnit)
	assert.InDelta(t, 0.25, milk.CalculatedUnitPrice, 1e-12)

	egg, err := e.materials.Create(ctx, e.owner, MaterialInput{Name: "egg", PurchasePrice: 300, PurchaseQuantity: 10, PurchaseUnit: "個"})
	require.NoError(t, err)
	assert.Equal(t, costing.BaseCount, egg.BaseUnit)
	assert.Equal(t, 30.0, egg.CalculatedUnitPrice)
}

func TestMaterialService_CreateValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.materials.Create(ctx, e.owner, MaterialInput{PurchasePrice: 100, PurchaseQuantity: 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.materials.Create(ctx, e.owner, MaterialInput{Name: "x", PurchasePrice: 100, PurchaseQuantity: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.materials.Create(ctx, e.owner, MaterialInput{Name: "x", PurchasePrice: -1, PurchaseQuantity: 1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMaterialService_UpdateRecostsMenus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	pork, err := e.materials.Create(ctx, e.owner, MaterialInput{Name: "pork", PurchasePrice: 1000, PurchaseQuantity: 500, PurchaseUnit: "g"})
	require.NoError(t, err)
	menu, err := e.menus.Create(ctx, e.owner, MenuInput{Name: "stew", SalesPrice: 1000})
	require.NoError(t, err)
	_, err = e.recipes.Add(ctx, e.owner, menu.ID, RecipeInput{MaterialID: pork.ID, UsageAmount: num(100)})
	require.NoError(t, err)
	assert.InDelta(t, 200, e.storedMenu(t, menu.ID).TotalCost, 1e-9)

	e.pub.reset()
	updated, err := e.materials.Update(ctx, e.owner, pork.ID, MaterialInput{Name: "pork", PurchasePrice: 1500, PurchaseQuantity: 500, PurchaseUnit: "g"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, updated.CalculatedUnitPrice)

	metrics := e.storedMenu(t, menu.ID)
	assert.InDelta(t, 300, metrics.TotalCost, 1e-9)
	assert.InDelta(t, 700, metrics.GrossProfit, 1e-9)
	assert.InDelta(t, 30, metrics.CostRate, 1e-9)
	assert.Equal(t, []string{"materials:updated", "menus:updated"}, e.pub.tables())

	_, err = e.materials.Update(ctx, e.owner, uuid.New(), MaterialInput{Name: "x", PurchaseQuantity: 1})
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}

func TestMaterialService_DeleteCascadesAndRecosts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	pork, err := e.materials.Create(ctx, e.owner, MaterialInput{Name: "pork", PurchasePrice: 1000, PurchaseQuantity: 500})
	require.NoError(t, err)
	salt, err := e.materials.Create(ctx, e.owner, MaterialInput{Name: "salt", PurchasePrice: 100, PurchaseQuantity: 1, PurchaseUnit: "kg"})
	require.NoError(t, err)
	menu, err := e.menus.Create(ctx, e.owner, MenuInput{Name: "stew", SalesPrice: 1000})
	require.NoError(t, err)
	_, err = e.recipes.Add(ctx, e.owner, menu.ID, RecipeInput{MaterialID: pork.ID, UsageAmount: num(100)})
	require.NoError(t, err)
	_, err = e.recipes.Add(ctx, e.owner, menu.ID, RecipeInput{MaterialID: salt.ID, UsageAmount: num(10)})
	require.NoError(t, err)
	assert.InDelta(t, 201, e.storedMenu(t, menu.ID).TotalCost, 1e-9)

	require.NoError(t, e.materials.Delete(ctx, e.owner, pork.ID))

	lines, err := e.recipes.ListByMenu(ctx, e.owner, menu.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, salt.ID, lines[0].MaterialID)
	assert.InDelta(t, 1, e.storedMenu(t, menu.ID).TotalCost, 1e-9)

	_, err = e.materials.Get(ctx, e.owner, pork.ID)
	assert.ErrorIs(t, err, ErrMaterialNotFound)
	assert.ErrorIs(t, e.materials.Delete(ctx, e.owner, pork.ID), ErrMaterialNotFound)
}

func TestMaterialService_ListIsPerOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.materials.Create(ctx, e.owner, MaterialInput{Name: "rice", PurchasePrice: 500, PurchaseQuantity: 5, PurchaseUnit: "kg"})
	require.NoError(t, err)

	mine, err := e.materials.List(ctx, e.owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := e.materials.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
