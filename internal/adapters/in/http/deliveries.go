package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
)

func (s *Server) CreateDelivery(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req CreateDeliveryRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return err
	}
	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateDeliveryCommand(p.UserID, orderID, addressID, req.Status, delivery.Schedule{
		EstimatedAt: req.EstimatedAt,
		DeliveredAt: req.DeliveredAt,
	})
	if err != nil {
		return err
	}

	d, err := s.handlers.CreateDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, deliveryFromDomain(d))
}

func (s *Server) UpdateDelivery(c echo.Context) error {
	p, id, err := principalAndID(c)
	if err != nil {
		return err
	}

	var req UpdateDeliveryRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateDeliveryCommand(p.UserID, id, req.Status, delivery.Schedule{
		EstimatedAt: req.EstimatedAt,
		DeliveredAt: req.DeliveredAt,
	})
	if err != nil {
		return err
	}
	return s.updateDelivery(c, cmd)
}

// UpdateDeliveryStatus rejects a status outside the closed set before any
// storage access.
func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	p, id, err := principalAndID(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(p.UserID, id, req.Status)
	if err != nil {
		return err
	}
	return s.updateDelivery(c, cmd)
}

func (s *Server) GetDelivery(c echo.Context) error {
	p, id, err := principalAndID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetDeliveryQuery(p.UserID, id)
	if err != nil {
		return err
	}

	result, err := s.handlers.GetDelivery.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := deliveryFromView(result.Delivery)
	o := orderFromView(result.Order)
	o.Delivery = nil
	resp.Order = &o
	if result.Address != nil {
		a := addressFromView(*result.Address)
		resp.Address = &a
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) updateDelivery(c echo.Context, cmd commands.UpdateDeliveryCommand) error {
	d, err := s.handlers.UpdateDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deliveryFromDomain(d))
}

func principalAndID(c echo.Context) (Principal, kernel.UUID, error) {
	p, err := principalFrom(c)
	if err != nil {
		return Principal{}, kernel.UUID{}, err
	}
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return Principal{}, kernel.UUID{}, err
	}
	return p, id, nil
}
