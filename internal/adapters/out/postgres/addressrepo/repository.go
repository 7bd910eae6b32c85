package addressrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// GormAddressRepository implements ports.AddressRepository using GORM.
type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) Add(ctx context.Context, address *delivery.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	dto := fromDomain(address)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormAddressRepository) Update(ctx context.Context, address *delivery.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	dto := fromDomain(address)
	result := r.db.WithContext(ctx).
		Model(&AddressDTO{}).
		Where("id = ?", dto.ID).
		Select(updatableColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("address", address.ID().String())
	}
	return nil
}

func (r *GormAddressRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Address, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("address", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByUser returns the user's addresses, oldest first.
func (r *GormAddressRepository) GetAllByUser(ctx context.Context, userID kernel.UserID) ([]*delivery.Address, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AddressDTO
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", int64(userID)).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	addresses := make([]*delivery.Address, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, nil
}
