package queries

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrGetUserAddressesQueryIsNotConstructed = errors.New(
	"GetUserAddressesQuery must be created via NewGetUserAddressesQuery constructor",
)

type GetUserAddressesQuery struct {
	userID kernel.UserID

	guard guard.ConstructorGuard
}

func NewGetUserAddressesQuery(userID kernel.UserID) (GetUserAddressesQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserAddressesQuery{}, err
	}
	return GetUserAddressesQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserAddressesQuery) Validate() error {
	return q.guard.Validate(ErrGetUserAddressesQueryIsNotConstructed)
}

type GetUserAddressesQueryHandler struct {
	db *gorm.DB
}

func NewGetUserAddressesQueryHandler(db *gorm.DB) GetUserAddressesQueryHandler {
	return GetUserAddressesQueryHandler{db: db}
}

func (h GetUserAddressesQueryHandler) Handle(ctx context.Context, query GetUserAddressesQuery) ([]AddressView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []addressRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT `+addressColumns+`
		FROM addresses
		WHERE user_id = ?
		ORDER BY created_at, id
	`, int64(query.userID)).Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]AddressView, 0, len(rows))
	for _, r := range rows {
		v, err := toAddressView(r)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
