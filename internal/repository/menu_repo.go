package repository

import (
	"context"

	"cost-calc-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuRepository interface {
	WithTx(tx *gorm.DB) MenuRepository
	Create(ctx context.Context, menu *model.Menu) error
	FindAll(ctx context.Context, ownerID uuid.UUID) ([]model.Menu, error)
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Menu, error)
	Update(ctx context.Context, menu *model.Menu) error
	UpdateMetrics(ctx context.Context, menu *model.Menu) error
	DeleteWithDependents(ctx context.Context, ownerID, id uuid.UUID) error
}

type menuRepo struct {
	db *gorm.DB
}

func NewMenuRepo(db *gorm.DB) MenuRepository {
	return &menuRepo{db}
}

func (r *menuRepo) WithTx(tx *gorm.DB) MenuRepository {
	return &menuRepo{tx}
}

func (r *menuRepo) Create(ctx context.Context, menu *model.Menu) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(menu).Error
}

func (r *menuRepo) FindAll(ctx context.Context, ownerID uuid.UUID) ([]model.Menu, error) {
	menus := []model.Menu{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&menus).Error
	return menus, err
}

func (r *menuRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*model.Menu, error) {
	var menu model.Menu
	if err := r.db.WithContext(ctx).First(&menu, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		return nil, notFound(err)
	}
	return &menu, nil
}

func (r *menuRepo) Update(ctx context.Context, menu *model.Menu) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(menu).Error
}

// UpdateMetrics writes only the derived cost columns.
func (r *menuRepo) UpdateMetrics(ctx context.Context, menu *model.Menu) error {
	return r.db.WithContext(ctx).Model(&model.Menu{}).
		Where("id = ? AND owner_id = ?", menu.ID, menu.OwnerID).
		Updates(map[string]interface{}{
			"sales_price":  menu.SalesPrice,
			"total_cost":   menu.TotalCost,
			"gross_profit": menu.GrossProfit,
			"cost_rate":    menu.CostRate,
		}).Error
}

// DeleteWithDependents removes the menu and its recipe lines atomically.
func (r *menuRepo) DeleteWithDependents(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Menu{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("menu_id = ? AND owner_id = ?", id, ownerID).Delete(&model.Recipe{}).Error
	})
}
