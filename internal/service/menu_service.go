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

type MenuInput struct {
	Name       string         `json:"name" validate:"required,max=255"`
	SalesPrice costing.Number `json:"sales_price" validate:"gte=0"`
	Image      string         `json:"image"`
}

// MenuView is a menu with its cost rate classified against the current
// settings.
type MenuView struct {
	model.Menu
	Evaluation costing.Evaluation `json:"evaluation"`
}

// MenuDetail adds the costed recipe lines.
type MenuDetail struct {
	MenuView
	Lines []LineDetail `json:"lines"`
}

type MenuService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in MenuInput) (*MenuView, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in MenuInput) (*MenuView, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID) ([]MenuView, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*MenuDetail, error)
	Recalculate(ctx context.Context, ownerID, id uuid.UUID) (*MenuView, error)
}

type menuService struct {
	db       *gorm.DB
	menus    repository.MenuRepository
	recipes  repository.RecipeRepository
	settings SettingsProvider
	pub      Publisher
}

func NewMenuService(db *gorm.DB, menus repository.MenuRepository, recipes repository.RecipeRepository, settings SettingsProvider, pub Publisher) MenuService {
	return &menuService{
		db:       db,
		menus:    menus,
		recipes:  recipes,
		settings: settings,
		pub:      publisherOrNop(pub),
	}
}

func (s *menuService) view(m *model.Menu) *MenuView {
	return &MenuView{
		Menu:       *m,
		Evaluation: costing.Evaluate(m.CostRate, m.SalesPrice, s.settings.Current()),
	}
}

func (s *menuService) Create(ctx context.Context, ownerID uuid.UUID, in MenuInput) (*MenuView, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	m := &model.Menu{
		Owned: model.Owned{OwnerID: ownerID},
		Name:  strings.TrimSpace(in.Name),
		Image: in.Image,
	}
	m.ApplyMetrics(costing.CalculateMetrics(in.SalesPrice.Float(), 0))
	m.CreatedBy = ownerID.String()
	m.UpdatedBy = ownerID.String()

	if err := s.menus.Create(ctx, m); err != nil {
		return nil, err
	}

	s.pub.Publish(ws.Event{Table: "menus", Action: ws.ActionCreated, ID: m.ID, OwnerID: ownerID, Data: m})
	return s.view(m), nil
}

// Update changes name, image and sales price; the metrics are recomputed
// from the recipe lines in the same transaction.
func (s *menuService) Update(ctx context.Context, ownerID, id uuid.UUID, in MenuInput) (*MenuView, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	var updated *model.Menu
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		menuRepo := s.menus.WithTx(tx)

		existing, err := menuRepo.FindByID(ctx, ownerID, id)
		if err != nil {
			return translate(err, ErrMenuNotFound)
		}
		existing.Name = strings.TrimSpace(in.Name)
		existing.Image = in.Image
		existing.SalesPrice = in.SalesPrice.Float()
		existing.UpdatedBy = ownerID.String()
		if err := menuRepo.Update(ctx, existing); err != nil {
			return err
		}

		updated, err = recalculateMenu(ctx, menuRepo, s.recipes.WithTx(tx), ownerID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.pub.Publish(ws.Event{Table: "menus", Action: ws.ActionUpdated, ID: id, OwnerID: ownerID, Data: updated.Metrics()})
	return s.view(updated), nil
}

func (s *menuService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.menus.DeleteWithDependents(ctx, ownerID, id); err != nil {
		return translate(err, ErrMenuNotFound)
	}
	s.pub.Publish(ws.Event{Table: "menus", Action: ws.ActionDeleted, ID: id, OwnerID: ownerID})
	return nil
}

func (s *menuService) List(ctx context.Context, ownerID uuid.UUID) ([]MenuView, error) {
	menus, err := s.menus.FindAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]MenuView, 0, len(menus))
	for i := range menus {
		views = append(views, *s.view(&menus[i]))
	}
	return views, nil
}

// Get returns the menu with lines costed live. The metrics shown are the
// live ones; stored values are only refreshed by writes or Recalculate.
func (s *menuService) Get(ctx context.Context, ownerID, id uuid.UUID) (*MenuDetail, error) {
	m, err := s.menus.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, translate(err, ErrMenuNotFound)
	}
	recipes, err := s.recipes.FindByMenu(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	lines, total := lineDetails(recipes)
	m.ApplyMetrics(costing.CalculateMetrics(m.SalesPrice, total))
	return &MenuDetail{MenuView: *s.view(m), Lines: lines}, nil
}

func (s *menuService) Recalculate(ctx context.Context, ownerID, id uuid.UUID) (*MenuView, error) {
	var updated *model.Menu
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		updated, err = recalculateMenu(ctx, s.menus.WithTx(tx), s.recipes.WithTx(tx), ownerID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.pub.Publish(ws.Event{Table: "menus", Action: ws.ActionUpdated, ID: id, OwnerID: ownerID, Data: updated.Metrics()})
	return s.view(updated), nil
}
