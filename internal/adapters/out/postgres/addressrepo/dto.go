// Package addressrepo maps customer addresses to the addresses table.
package addressrepo

import (
	"time"

	"github.com/google/uuid"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
)

type AddressDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	Street    string    `gorm:"type:varchar(255);not null"`
	Number    string    `gorm:"type:varchar(32);not null"`
	City      string    `gorm:"type:varchar(128);not null"`
	State     string    `gorm:"type:varchar(64);not null"`
	ZipCode   string    `gorm:"type:varchar(16);not null"`
	Country   string    `gorm:"type:varchar(64);not null"`
	Latitude  *float64  `gorm:"type:double precision"`
	Longitude *float64  `gorm:"type:double precision"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AddressDTO) TableName() string {
	return "addresses"
}

var updatableColumns = []string{
	"street", "number", "city", "state", "zip_code", "country",
	"latitude", "longitude", "updated_at",
}

func fromDomain(a *delivery.Address) AddressDTO {
	d := a.Details()
	dto := AddressDTO{
		ID:      a.ID().Bytes(),
		UserID:  int64(a.UserID()),
		Street:  d.Street,
		Number:  d.Number,
		City:    d.City,
		State:   d.State,
		ZipCode: d.ZipCode,
		Country: d.Country,
	}
	if loc := a.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}
	return dto
}

func toDomain(dto AddressDTO) (*delivery.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return delivery.RestoreAddress(id, kernel.UserID(dto.UserID), delivery.PostalDetails{
		Street:  dto.Street,
		Number:  dto.Number,
		City:    dto.City,
		State:   dto.State,
		ZipCode: dto.ZipCode,
		Country: dto.Country,
	}, location)
}
