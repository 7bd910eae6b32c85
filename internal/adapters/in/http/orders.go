package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/services"
)

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	lines := make([]services.LineRequest, len(req.Items))
	for i, item := range req.Items {
		lines[i] = services.LineRequest{PizzaID: item.PizzaID, Quantity: item.Quantity}
	}

	var addressID *kernel.UUID
	if req.AddressID != nil {
		id, parseErr := kernel.UUIDFromString(*req.AddressID)
		if parseErr != nil {
			return parseErr
		}
		addressID = &id
	}

	cmd, err := commands.NewCreateOrderCommand(p.UserID, lines, addressID)
	if err != nil {
		return err
	}

	result, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, orderFromDomain(result.Order, result.Delivery))
}

// GetOrders handles GET /orders (admin).
func (s *Server) GetOrders(c echo.Context) error {
	views, err := s.handlers.GetAllOrders.Handle(c.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return err
	}

	resp := make([]OrderResponse, len(views))
	for i, v := range views {
		resp[i] = orderFromView(v)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /orders/:id. Admins may read any order.
func (s *Server) GetOrder(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id, p.Requester())
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromView(view))
}

// UpdateOrderStatus handles PATCH /orders/:id/status (admin).
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(id, req.Status)
	if err != nil {
		return err
	}

	o, err := s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderFromDomain(o, nil))
}
