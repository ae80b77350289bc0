package service

import (
	"context"
	"fmt"

	"cost-calc-api/internal/model"
	"cost-calc-api/internal/repository"
	"cost-calc-api/pkg/costing"

	"github.com/google/uuid"
)

// LineDetail is a recipe line together with its computed cost.
type LineDetail struct {
	model.Recipe
	UnitPrice float64 `json:"unit_price"`
	LineCost  float64 `json:"line_cost"`
}

func lineDetails(recipes []model.Recipe) ([]LineDetail, float64) {
	details := make([]LineDetail, 0, len(recipes))
	lines := make([]costing.Line, 0, len(recipes))
	for _, r := range recipes {
		line := r.Line(r.Material)
		lines = append(lines, line)
		details = append(details, LineDetail{
			Recipe:    r,
			UnitPrice: line.BaseUnitPrice,
			LineCost:  line.Cost(),
		})
	}
	return details, costing.TotalCost(lines)
}

// recalculateMenu recomputes a menu's total cost from its recipe lines,
// priced at each material's live unit price, and stores the metrics.
func recalculateMenu(ctx context.Context, menus repository.MenuRepository, recipes repository.RecipeRepository, ownerID, menuID uuid.UUID) (*model.Menu, error) {
	menu, err := menus.FindByID(ctx, ownerID, menuID)
	if err != nil {
		return nil, translate(err, ErrMenuNotFound)
	}

	lines, err := recipes.FindByMenu(ctx, ownerID, menuID)
	if err != nil {
		return nil, fmt.Errorf("load recipe lines: %w", err)
	}
	_, total := lineDetails(lines)

	menu.ApplyMetrics(costing.CalculateMetrics(menu.SalesPrice, total))
	if err := menus.UpdateMetrics(ctx, menu); err != nil {
		return nil, fmt.Errorf("store menu metrics: %w", err)
	}
	return menu, nil
}
