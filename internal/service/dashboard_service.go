package service

import (
	"context"

	"cost-calc-api/internal/repository"
	"cost-calc-api/pkg/costing"

	"github.com/google/uuid"
)

// Dashboard summarizes an owner's costing data.
type Dashboard struct {
	Stats      *repository.DashboardStats     `json:"stats"`
	Categories []repository.CategoryBreakdown `json:"categories"`
	Tones      map[costing.Tone]int           `json:"tones"`
	OverWarn   int                            `json:"over_warn"`
	Settings   costing.Settings               `json:"settings"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context, ownerID uuid.UUID) (*Dashboard, error)
}

type dashboardService struct {
	repo     repository.DashboardRepository
	menus    repository.MenuRepository
	settings SettingsProvider
}

func NewDashboardService(repo repository.DashboardRepository, menus repository.MenuRepository, settings SettingsProvider) DashboardService {
	return &dashboardService{repo: repo, menus: menus, settings: settings}
}

func (s *dashboardService) GetDashboard(ctx context.Context, ownerID uuid.UUID) (*Dashboard, error) {
	stats, err := s.repo.GetDashboardStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.GetCategoryBreakdown(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	menus, err := s.menus.FindAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	settings := s.settings.Current()
	d := &Dashboard{
		Stats:      stats,
		Categories: categories,
		Tones: map[costing.Tone]int{
			costing.ToneNone:   0,
			costing.ToneGood:   0,
			costing.ToneWarn:   0,
			costing.ToneDanger: 0,
		},
		Settings: settings,
	}
	for _, m := range menus {
		ev := costing.Evaluate(m.CostRate, m.SalesPrice, settings)
		d.Tones[ev.Tone]++
		if ev.OverWarnThreshold {
			d.OverWarn++
		}
	}
	return d, nil
}
