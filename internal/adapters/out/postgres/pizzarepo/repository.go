// Package pizzarepo reads the pizza catalog.
package pizzarepo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pizzeria/internal/core/domain/model/catalog"
)

// PizzaDTO is the pizzas row. The table is owned by the catalog service; it is
// migrated here only so the service can run standalone.
type PizzaDTO struct {
	ID    int64           `gorm:"primaryKey"`
	Name  string          `gorm:"type:varchar(255);not null"`
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (PizzaDTO) TableName() string {
	return "pizzas"
}

type GormPizzaRepository struct {
	db *gorm.DB
}

func NewGormPizzaRepository(db *gorm.DB) *GormPizzaRepository {
	return &GormPizzaRepository{db: db}
}

// GetByIDs fetches every listed pizza in one query.
func (r *GormPizzaRepository) GetByIDs(ctx context.Context, ids []int64) ([]*catalog.Pizza, error) {
	if len(ids) == 0 {
		return []*catalog.Pizza{}, nil
	}

	var dtos []PizzaDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	pizzas := make([]*catalog.Pizza, 0, len(dtos))
	for _, dto := range dtos {
		p, err := catalog.RestorePizza(dto.ID, dto.Name, dto.Price)
		if err != nil {
			return nil, err
		}
		pizzas = append(pizzas, p)
	}
	return pizzas, nil
}
