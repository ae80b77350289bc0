package repository

import (
	"context"

	"cost-calc-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecipeRepository interface {
	WithTx(tx *gorm.DB) RecipeRepository
	Create(ctx context.Context, recipe *model.Recipe) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Recipe, error)
	FindByMenu(ctx context.Context, ownerID, menuID uuid.UUID) ([]model.Recipe, error)
	MenuIDsForMaterial(ctx context.Context, ownerID, materialID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type recipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) RecipeRepository {
	return &recipeRepo{db}
}

func (r *recipeRepo) WithTx(tx *gorm.DB) RecipeRepository {
	return &recipeRepo{tx}
}

func (r *recipeRepo) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error
}

func (r *recipeRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).Preload("Material").First(&recipe, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// FindByMenu returns the menu's lines with their materials preloaded.
// Lines whose material is gone come back with a nil Material.
func (r *recipeRepo) FindByMenu(ctx context.Context, ownerID, menuID uuid.UUID) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("menu_id = ? AND owner_id = ?", menuID, ownerID).
		Order("created_at ASC").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepo) MenuIDsForMaterial(ctx context.Context, ownerID, materialID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("material_id = ? AND owner_id = ?", materialID, ownerID).
		Distinct("menu_id").
		Pluck("menu_id", &ids).Error
	return ids, err
}

func (r *recipeRepo) Update(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

func (r *recipeRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
