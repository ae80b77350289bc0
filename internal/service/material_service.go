package service

import (
	"context"
	"strings"

	"cost-calc-api/internal/model"
	"cost-calc-api/internal/repository"
	"cost-calc-api/internal/ws"
	"cost-calc-api/pkg/costing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialInput is a purchase as entered: price paid for a quantity in
// PurchaseUnit (kg, g, L, ml, 個...).
type MaterialInput struct {
	Name             string         `json:"name" validate:"required,max=255"`
	Category         string         `json:"category" validate:"max=100"`
	PurchasePrice    costing.Number `json:"purchase_price" validate:"gte=0"`
	PurchaseQuantity costing.Number `json:"purchase_quantity" validate:"gt=0"`
	PurchaseUnit     string         `json:"purchase_unit" validate:"max=20"`
}

type MaterialService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in MaterialInput) (*model.Material, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in MaterialInput) (*model.Material, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Material, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Material, error)
}

type materialService struct {
	db        *gorm.DB
	materials repository.MaterialRepository
	menus     repository.MenuRepository
	recipes   repository.RecipeRepository
	pub       Publisher
}

func NewMaterialService(db *gorm.DB, materials repository.MaterialRepository, menus repository.MenuRepository, recipes repository.RecipeRepository, pub Publisher) MaterialService {
	return &materialService{
		db:        db,
		materials: materials,
		menus:     menus,
		recipes:   recipes,
		pub:       publisherOrNop(pub),
	}
}

// apply copies the purchase onto m, normalizing the quantity to the base
// unit and refreshing the unit price.
func (in MaterialInput) apply(m *model.Material) {
	unit := strings.TrimSpace(in.PurchaseUnit)
	if unit == "" {
		unit = string(costing.BaseGram)
	}
	m.Name = strings.TrimSpace(in.Name)
	m.Category = strings.TrimSpace(in.Category)
	m.PurchasePrice = in.PurchasePrice.Float()
	m.PurchaseQuantity = costing.Normalize(in.PurchaseQuantity.Float(), unit)
	m.BaseUnit = costing.BaseUnitFor(unit)
	m.Recalculate()
}

func (s *materialService) Create(ctx context.Context, ownerID uuid.UUID, in MaterialInput) (*model.Material, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	m := &model.Material{Owned: model.Owned{OwnerID: ownerID}}
	in.apply(m)
	m.CreatedBy = ownerID.String()
	m.UpdatedBy = ownerID.String()

	if err := s.materials.Create(ctx, m); err != nil {
		return nil, err
	}

	s.pub.Publish(ws.Event{Table: "materials", Action: ws.ActionCreated, ID: m.ID, OwnerID: ownerID, Data: m})
	return m, nil
}

// Update rewrites the purchase data and re-costs every menu using the
// material in the same transaction.
func (s *materialService) Update(ctx context.Context, ownerID, id uuid.UUID, in MaterialInput) (*model.Material, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	var (
		updated *model.Material
		menus   []*model.Menu
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		materialRepo := s.materials.WithTx(tx)
		menuRepo := s.menus.WithTx(tx)
		recipeRepo := s.recipes.WithTx(tx)

		existing, err := materialRepo.FindByID(ctx, ownerID, id)
		if err != nil {
			return translate(err, ErrMaterialNotFound)
		}
		in.apply(existing)
		existing.UpdatedBy = ownerID.String()
		if err := materialRepo.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing

		menuIDs, err := recipeRepo.MenuIDsForMaterial(ctx, ownerID, id)
		if err != nil {
			return err
		}
		for _, menuID := range menuIDs {
			menu, err := recalculateMenu(ctx, menuRepo, recipeRepo, ownerID, menuID)
			if err != nil {
				return err
			}
			menus = append(menus, menu)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.pub.Publish(ws.Event{Table: "materials", Action: ws.ActionUpdated, ID: updated.ID, OwnerID: ownerID, Data: updated})
	publishMenus(s.pub, ownerID, menus)
	return updated, nil
}

// Delete removes the material with its recipe lines and re-costs the
// menus that lost a line, all or nothing.
func (s *materialService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	var menus []*model.Menu
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		menuRepo := s.menus.WithTx(tx)
		recipeRepo := s.recipes.WithTx(tx)

		menuIDs, err := s.materials.WithTx(tx).DeleteWithDependents(ctx, ownerID, id)
		if err != nil {
			return translate(err, ErrMaterialNotFound)
		}
		for _, menuID := range menuIDs {
			menu, err := recalculateMenu(ctx, menuRepo, recipeRepo, ownerID, menuID)
			if err != nil {
				return err
			}
			menus = append(menus, menu)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.pub.Publish(ws.Event{Table: "materials", Action: ws.ActionDeleted, ID: id, OwnerID: ownerID})
	publishMenus(s.pub, ownerID, menus)
	return nil
}

func (s *materialService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Material, error) {
	return s.materials.FindAll(ctx, ownerID)
}

func (s *materialService) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Material, error) {
	m, err := s.materials.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, ErrMaterialNotFound)
	}
	return m, nil
}

func publishMenus(pub Publisher, ownerID uuid.UUID, menus []*model.Menu) {
	for _, m := range menus {
		pub.Publish(ws.Event{Table: "menus", Action: ws.ActionUpdated, ID: m.ID, OwnerID: ownerID, Data: m.Metrics()})
	}
}
