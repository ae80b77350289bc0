package repository

import (
	"context"
	"testing"

	"cost-calc-api/internal/model"
	"cost-calc-api/internal/testutil"
	"cost-calc-api/pkg/costing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	owner     uuid.UUID
	materials MaterialRepository
	menus     MenuRepository
	recipes   RecipeRepository
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		db:        db,
		owner:     uuid.New(),
		materials: NewMaterialRepo(db),
		menus:     NewMenuRepo(db),
		recipes:   NewRecipeRepo(db),
	}
}

func (f *fixture) material(t *testing.T, name string, price, qty float64) *model.Material {
	m := &model.Material{
		Owned:            model.Owned{OwnerID: f.owner},
		Name:             name,
		PurchasePrice:    price,
		PurchaseQuantity: qty,
		BaseUnit:         costing.BaseGram,
	}
	m.Recalculate()
	require.NoError(t, f.materials.Create(context.Background(), m))
	return m
}

func (f *fixture) menu(t *testing.T, name string, price float64) *model.Menu {
	m := &model.Menu{Owned: model.Owned{OwnerID: f.owner}, Name: name, SalesPrice: price}
	require.NoError(t, f.menus.Create(context.Background(), m))
	return m
}

func (f *fixture) line(t *testing.T, menu *model.Menu, mat *model.Material, usage float64) *model.Recipe {
	r := &model.Recipe{
		Owned:       model.Owned{OwnerID: f.owner},
		MenuID:      menu.ID,
		MaterialID:  mat.ID,
		UsageAmount: usage,
		UsageUnit:   "g",
		YieldRate:   100,
	}
	require.NoError(t, f.recipes.Create(context.Background(), r))
	return r
}

func TestMaterialRepo_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.material(t, "butter", 500, 450)
	f.material(t, "almond", 800, 1000)

	all, err := f.materials.FindAll(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "almond", all[0].Name)

	others, err := f.materials.FindAll(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, others)

	b.PurchasePrice = 900
	b.Recalculate()
	require.NoError(t, f.materials.Update(ctx, b))

	got, err := f.materials.FindByID(ctx, f.owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.CalculatedUnitPrice)
	assert.Equal(t, got.UnitPrice(), got.CalculatedUnitPrice)

	_, err = f.materials.FindByID(ctx, uuid.New(), b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMaterialRepo_RejectsUnknownBaseUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := &model.Material{Owned: model.Owned{OwnerID: f.owner}, Name: "oil", PurchasePrice: 500, PurchaseQuantity: 1, BaseUnit: "l"}
	assert.Error(t, f.materials.Create(ctx, bad))

	m := f.material(t, "vinegar", 300, 500)
	m.BaseUnit = "kg"
	assert.Error(t, f.materials.Update(ctx, m))

	all, err := f.materials.FindAll(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, costing.BaseGram, all[0].BaseUnit)
}

func TestMaterialRepo_DeleteWithDependents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pork := f.material(t, "pork", 1000, 500)
	salt := f.material(t, "salt", 100, 1000)
	stew := f.menu(t, "stew", 1200)
	soup := f.menu(t, "soup", 800)
	f.line(t, stew, pork, 100)
	f.line(t, soup, pork, 50)
	keep := f.line(t, stew, salt, 2)

	menuIDs, err := f.materials.DeleteWithDependents(ctx, f.owner, pork.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{stew.ID, soup.ID}, menuIDs)

	_, err = f.materials.FindByID(ctx, f.owner, pork.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	lines, err := f.recipes.FindByMenu(ctx, f.owner, stew.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, keep.ID, lines[0].ID)

	lines, err = f.recipes.FindByMenu(ctx, f.owner, soup.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = f.materials.DeleteWithDependents(ctx, f.owner, pork.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMaterialRepo_DeleteIsScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pork := f.material(t, "pork", 1000, 500)
	stew := f.menu(t, "stew", 1200)
	f.line(t, stew, pork, 100)

	_, err := f.materials.DeleteWithDependents(ctx, uuid.New(), pork.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	lines, err := f.recipes.FindByMenu(ctx, f.owner, stew.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestMenuRepo_DeleteWithDependents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pork := f.material(t, "pork", 1000, 500)
	stew := f.menu(t, "stew", 1200)
	soup := f.menu(t, "soup", 800)
	f.line(t, stew, pork, 100)
	f.line(t, soup, pork, 100)

	require.NoError(t, f.menus.DeleteWithDependents(ctx, f.owner, stew.ID))

	_, err := f.menus.FindByID(ctx, f.owner, stew.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err := f.recipes.MenuIDsForMaterial(ctx, f.owner, pork.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{soup.ID}, ids)

	assert.ErrorIs(t, f.menus.DeleteWithDependents(ctx, f.owner, stew.ID), ErrNotFound)
}

func TestMenuRepo_UpdateMetrics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := f.menu(t, "stew", 1000)
	m.ApplyMetrics(costing.CalculateMetrics(1000, 360))
	require.NoError(t, f.menus.UpdateMetrics(ctx, m))

	got, err := f.menus.FindByID(ctx, f.owner, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 360.0, got.TotalCost)
	assert.Equal(t, 640.0, got.GrossProfit)
	assert.Equal(t, 36.0, got.CostRate)
}

func TestRecipeRepo_FindByMenuPreloadsMaterial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pork := f.material(t, "pork", 1000, 500)
	stew := f.menu(t, "stew", 1200)
	r := f.line(t, stew, pork, 100)

	lines, err := f.recipes.FindByMenu(ctx, f.owner, stew.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Material)
	assert.Equal(t, 200.0, lines[0].Line(lines[0].Material).Cost())

	require.NoError(t, f.recipes.Delete(ctx, f.owner, r.ID))
	assert.ErrorIs(t, f.recipes.Delete(ctx, f.owner, r.ID), ErrNotFound)
}

func TestRepos_WithTxRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.db.Transaction(func(tx *gorm.DB) error {
		m := &model.Menu{Owned: model.Owned{OwnerID: f.owner}, Name: "draft"}
		if err := f.menus.WithTx(tx).Create(ctx, m); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	menus, err := f.menus.FindAll(ctx, f.owner)
	require.NoError(t, err)
	assert.Empty(t, menus)
}

func TestSettingRepo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSettingRepo(db)
	ctx := context.Background()

	_, err := repo.Load(ctx, costing.SettingsKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, costing.SettingsKey, []byte(`{"targetCostRate":25}`)))
	require.NoError(t, repo.Save(ctx, costing.SettingsKey, []byte(`{"targetCostRate":28}`)))

	raw, err := repo.Load(ctx, costing.SettingsKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"targetCostRate":28}`, string(raw))

	require.NoError(t, repo.Delete(ctx, costing.SettingsKey))
	_, err = repo.Load(ctx, costing.SettingsKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := &model.User{Email: "chef@example.com", FullName: "Chef"}
	require.NoError(t, u.SetPassword("password"))
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.FindByEmail(ctx, "chef@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, repo.Create(ctx, &model.User{Email: "chef@example.com", Password: "x"}))

	assert.ErrorIs(t, repo.UpdatePassword(ctx, uuid.New(), "hash"), ErrNotFound)
}

func TestDashboardRepo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewDashboardRepo(f.db)

	f.material(t, "pork", 1000, 500)
	f.material(t, "salt", 100, 1000)
	a := f.menu(t, "stew", 1000)
	a.ApplyMetrics(costing.CalculateMetrics(1000, 300))
	require.NoError(t, f.menus.UpdateMetrics(ctx, a))
	b := f.menu(t, "soup", 500)
	b.ApplyMetrics(costing.CalculateMetrics(500, 250))
	require.NoError(t, f.menus.UpdateMetrics(ctx, b))
	f.menu(t, "special", 0)

	stats, err := repo.GetDashboardStats(ctx, f.owner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalMaterials)
	assert.Equal(t, int64(3), stats.TotalMenus)
	assert.Equal(t, int64(2), stats.PricedMenus)
	assert.InDelta(t, 40.0, stats.AverageCostRate, 1e-9)
	assert.InDelta(t, 1500.0, stats.TotalSales, 1e-9)
	assert.InDelta(t, 550.0, stats.TotalCost, 1e-9)

	cats, err := repo.GetCategoryBreakdown(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, int64(2), cats[0].Materials)
}
