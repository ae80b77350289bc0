package repository

import (
	"context"

	"cost-calc-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalMaterials  int64   `json:"total_materials"`
	TotalMenus      int64   `json:"total_menus"`
	PricedMenus     int64   `json:"priced_menus"`
	AverageCostRate float64 `json:"average_cost_rate"`
	TotalSales      float64 `json:"total_sales"`
	TotalCost       float64 `json:"total_cost"`
}

// CategoryBreakdown groups materials per category.
type CategoryBreakdown struct {
	Category         string  `json:"category"`
	Materials        int64   `json:"materials"`
	AverageUnitPrice float64 `json:"average_unit_price"`
}

type DashboardRepository interface {
	GetDashboardStats(ctx context.Context, ownerID uuid.UUID) (*DashboardStats, error)
	GetCategoryBreakdown(ctx context.Context, ownerID uuid.UUID) ([]CategoryBreakdown, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) GetDashboardStats(ctx context.Context, ownerID uuid.UUID) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Material{}).Where("owner_id = ?", ownerID).Count(&stats.TotalMaterials).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Menu{}).Where("owner_id = ?", ownerID).Count(&stats.TotalMenus).Error; err != nil {
		return nil, err
	}

	// cost rate is only meaningful for menus with a sales price
	priced := db.Model(&model.Menu{}).Where("owner_id = ? AND sales_price > 0", ownerID)
	if err := priced.Count(&stats.PricedMenus).Error; err != nil {
		return nil, err
	}

	var agg struct {
		AvgRate float64
		Sales   float64
		Cost    float64
	}
	err := db.Model(&model.Menu{}).
		Select("COALESCE(AVG(cost_rate), 0) AS avg_rate, COALESCE(SUM(sales_price), 0) AS sales, COALESCE(SUM(total_cost), 0) AS cost").
		Where("owner_id = ? AND sales_price > 0", ownerID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	stats.AverageCostRate = agg.AvgRate
	stats.TotalSales = agg.Sales
	stats.TotalCost = agg.Cost

	return &stats, nil
}

func (r *dashboardRepo) GetCategoryBreakdown(ctx context.Context, ownerID uuid.UUID) ([]CategoryBreakdown, error) {
	results := []CategoryBreakdown{}

	rows, err := r.db.WithContext(ctx).Model(&model.Material{}).
		Select("category, COUNT(*) AS materials, COALESCE(AVG(calculated_unit_price), 0) AS average_unit_price").
		Where("owner_id = ?", ownerID).
		Group("category").
		Order("category ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data CategoryBreakdown
		if err := rows.Scan(&data.Category, &data.Materials, &data.AverageUnitPrice); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}
