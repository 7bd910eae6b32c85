package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
)

func (s *Server) CreateAddress(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req CreateAddressRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	location, err := optionalLocation(req.Latitude, req.Longitude)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateAddressCommand(p.UserID, delivery.PostalDetails{
		Street:  req.Street,
		Number:  req.Number,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Country: req.Country,
	}, location)
	if err != nil {
		return err
	}

	address, err := s.handlers.CreateAddress.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, addressFromDomain(address))
}

func (s *Server) GetUserAddresses(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetUserAddressesQuery(p.UserID)
	if err != nil {
		return err
	}

	views, err := s.handlers.GetUserAddresses.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]AddressResponse, len(views))
	for i, v := range views {
		resp[i] = addressFromView(v)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateAddress(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}

	var req UpdateAddressRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	location, err := optionalLocation(req.Latitude, req.Longitude)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateAddressCommand(p.UserID, id, delivery.AddressPatch{
		Street:   req.Street,
		Number:   req.Number,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Country:  req.Country,
		Location: location,
	})
	if err != nil {
		return err
	}

	address, err := s.handlers.UpdateAddress.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, addressFromDomain(address))
}

func optionalLocation(lat, lng *float64) (*kernel.Location, error) {
	if lat == nil || lng == nil {
		return nil, nil //nolint:nilnil // no coordinates given
	}
	loc, err := kernel.NewLocation(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
