package service

import (
	"context"
	"sync"
	"testing"

	"cost-calc-api/internal/repository"
	"cost-calc-api/internal/testutil"
	"cost-calc-api/internal/ws"
	"cost-calc-api/pkg/costing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *recordingPublisher) Publish(ev ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) tables() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Table+":"+ev.Action)
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type env struct {
	owner     uuid.UUID
	pub       *recordingPublisher
	settings  SettingsService
	materials MaterialService
	menus     MenuService
	recipes   RecipeService
	dashboard DashboardService
	menuRepo  repository.MenuRepository
}

func newEnv(t *testing.T) *env {
	db := testutil.NewDB(t)
	pub := &recordingPublisher{}

	materialRepo := repository.NewMaterialRepo(db)
	menuRepo := repository.NewMenuRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	settings := NewSettingsService(repository.NewSettingRepo(db), pub)

	return &env{
		owner:     uuid.New(),
		pub:       pub,
		settings:  settings,
		materials: NewMaterialService(db, materialRepo, menuRepo, recipeRepo, pub),
		menus:     NewMenuService(db, menuRepo, recipeRepo, settings, pub),
		recipes:   NewRecipeService(db, materialRepo, menuRepo, recipeRepo, pub),
		dashboard: NewDashboardService(repository.NewDashboardRepo(db), menuRepo, settings),
		menuRepo:  menuRepo,
	}
}

func num(v float64) *costing.Number {
	n := costing.Number(v)
	return &n
}

func (e *env) storedMenu(t *testing.T, id uuid.UUID) costing.Metrics {
	m, err := e.menuRepo.FindByID(context.Background(), e.owner, id)
	require.NoError(t, err)
	return m.Metrics()
}
