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

// RecipeInput attaches a material to a menu. Omitted fields default to a
// zero usage in the material's base unit at 100% yield.
type RecipeInput struct {
	MaterialID  uuid.UUID       `json:"material_id" validate:"uuid_required"`
	UsageAmount *costing.Number `json:"usage_amount" validate:"omitempty,gte=0"`
	UsageUnit   string          `json:"usage_unit" validate:"max=20"`
	YieldRate   *costing.Number `json:"yield_rate" validate:"omitempty,gt=0,lte=100"`
}

// RecipeUpdate changes only the fields that are present.
type RecipeUpdate struct {
	UsageAmount *costing.Number `json:"usage_amount" validate:"omitempty,gte=0"`
	UsageUnit   *string         `json:"usage_unit" validate:"omitempty,max=20"`
	YieldRate   *costing.Number `json:"yield_rate" validate:"omitempty,gt=0,lte=100"`
}

type RecipeService interface {
	Add(ctx context.Context, ownerID, menuID uuid.UUID, in RecipeInput) (*LineDetail, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in RecipeUpdate) (*LineDetail, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	ListByMenu(ctx context.Context, ownerID, menuID uuid.UUID) ([]LineDetail, error)
}

type recipeService struct {
	db        *gorm.DB
	materials repository.MaterialRepository
	menus     repository.MenuRepository
	recipes   repository.RecipeRepository
	pub       Publisher
}

func NewRecipeService(db *gorm.DB, materials repository.MaterialRepository, menus repository.MenuRepository, recipes repository.RecipeRepository, pub Publisher) RecipeService {
	return &recipeService{
		db:        db,
		materials: materials,
		menus:     menus,
		recipes:   recipes,
		pub:       publisherOrNop(pub),
	}
}

func (s *recipeService) Add(ctx context.Context, ownerID, menuID uuid.UUID, in RecipeInput) (*LineDetail, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	var (
		recipe *model.Recipe
		menu   *model.Menu
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		menuRepo := s.menus.WithTx(tx)
		recipeRepo := s.recipes.WithTx(tx)

		if _, err := menuRepo.FindByID(ctx, ownerID, menuID); err != nil {
			return translate(err, ErrMenuNotFound)
		}
		material, err := s.materials.WithTx(tx).FindByID(ctx, ownerID, in.MaterialID)
		if err != nil {
			return translate(err, ErrMaterialNotFound)
		}

		unit := strings.TrimSpace(in.UsageUnit)
		if unit == "" {
			unit = string(material.BaseUnit)
		}
		recipe = &model.Recipe{
			Owned:       model.Owned{OwnerID: ownerID},
			MenuID:      menuID,
			MaterialID:  material.ID,
			UsageAmount: costing.FloatOr(in.UsageAmount, 0),
			UsageUnit:   unit,
			YieldRate:   costing.FloatOr(in.YieldRate, model.DefaultYieldRate),
		}
		recipe.CreatedBy = ownerID.String()
		if err := recipeRepo.Create(ctx, recipe); err != nil {
			return err
		}
		recipe.Material = material

		menu, err = recalculateMenu(ctx, menuRepo, recipeRepo, ownerID, menuID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ws.ActionCreated, recipe, menu)
	return detail(recipe), nil
}

func (s *recipeService) Update(ctx context.Context, ownerID, id uuid.UUID, in RecipeUpdate) (*LineDetail, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	var (
		recipe *model.Recipe
		menu   *model.Menu
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipeRepo := s.recipes.WithTx(tx)

		existing, err := recipeRepo.FindByID(ctx, ownerID, id)
		if err != nil {
			return translate(err, ErrRecipeNotFound)
		}
		if in.UsageAmount != nil {
			existing.UsageAmount = in.UsageAmount.Float()
		}
		if in.UsageUnit != nil && strings.TrimSpace(*in.UsageUnit) != "" {
			existing.UsageUnit = strings.TrimSpace(*in.UsageUnit)
		}
		if in.YieldRate != nil {
			existing.YieldRate = in.YieldRate.Float()
		}
		existing.UpdatedBy = ownerID.String()
		if err := recipeRepo.Update(ctx, existing); err != nil {
			return err
		}
		recipe = existing

		menu, err = recalculateMenu(ctx, s.menus.WithTx(tx), recipeRepo, ownerID, existing.MenuID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ws.ActionUpdated, recipe, menu)
	return detail(recipe), nil
}

func (s *recipeService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	var (
		recipe *model.Recipe
		menu   *model.Menu
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipeRepo := s.recipes.WithTx(tx)

		existing, err := recipeRepo.FindByID(ctx, ownerID, id)
		if err != nil {
			return translate(err, ErrRecipeNotFound)
		}
		if err := recipeRepo.Delete(ctx, ownerID, id); err != nil {
			return translate(err, ErrRecipeNotFound)
		}
		recipe = existing

		menu, err = recalculateMenu(ctx, s.menus.WithTx(tx), recipeRepo, ownerID, existing.MenuID)
		return err
	})
	if err != nil {
		return err
	}

	s.publish(ws.ActionDeleted, recipe, menu)
	return nil
}

func (s *recipeService) ListByMenu(ctx context.Context, ownerID, menuID uuid.UUID) ([]LineDetail, error) {
	if _, err := s.menus.FindByID(ctx, ownerID, menuID); err != nil {
		return nil, translate(err, ErrMenuNotFound)
	}
	recipes, err := s.recipes.FindByMenu(ctx, ownerID, menuID)
	if err != nil {
		return nil, err
	}
	lines, _ := lineDetails(recipes)
	return lines, nil
}

func (s *recipeService) publish(action string, recipe *model.Recipe, menu *model.Menu) {
	s.pub.Publish(ws.Event{Table: "recipes", Action: action, ID: recipe.ID, OwnerID: recipe.OwnerID})
	publishMenus(s.pub, recipe.OwnerID, []*model.Menu{menu})
}

func detail(r *model.Recipe) *LineDetail {
	lines, _ := lineDetails([]model.Recipe{*r})
	return &lines[0]
}
