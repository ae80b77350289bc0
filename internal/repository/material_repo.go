package repository

import (
	"context"

	"cost-calc-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialRepository interface {
	WithTx(tx *gorm.DB) MaterialRepository
	Create(ctx context.Context, material *model.Material) error
	FindAll(ctx context.Context, ownerID uuid.UUID) ([]model.Material, error)
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Material, error)
	Update(ctx context.Context, material *model.Material) error
	DeleteWithDependents(ctx context.Context, ownerID, id uuid.UUID) ([]uuid.UUID, error)
}

type materialRepo struct {
	db *gorm.DB
}

func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{db}
}

func (r *materialRepo) WithTx(tx *gorm.DB) MaterialRepository {
	return &materialRepo{tx}
}

func (r *materialRepo) Create(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepo) FindAll(ctx context.Context, ownerID uuid.UUID) ([]model.Material, error) {
	materials := []model.Material{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&materials).Error
	return materials, err
}

func (r *materialRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Material, error) {
	var material model.Material
	if err := r.db.WithContext(ctx).First(&material, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		return nil, notFound(err)
	}
	return &material, nil
}

func (r *materialRepo) Update(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(material).Error
}

// DeleteWithDependents removes the material and every recipe line that
// uses it in one transaction, and reports the menus those lines belonged to.
func (r *materialRepo) DeleteWithDependents(ctx context.Context, ownerID, id uuid.UUID) ([]uuid.UUID, error) {
	var menuIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Material{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Model(&model.Recipe{}).
			Where("material_id = ? AND owner_id = ?", id, ownerID).
			Distinct("menu_id").
			Pluck("menu_id", &menuIDs).Error; err != nil {
			return err
		}

		return tx.Where("material_id = ? AND owner_id = ?", id, ownerID).Delete(&model.Recipe{}).Error
	})
	if err != nil {
		return nil, err
	}
	return menuIDs, nil
}
