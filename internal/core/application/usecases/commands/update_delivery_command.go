package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/delivery"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrUpdateDeliveryCommandIsNotConstructed = errors.New(
	"UpdateDeliveryCommand must be created via NewUpdateDeliveryCommand constructor",
)

// UpdateDeliveryCommand is a partial update of status and timestamps. The
// status is checked against the closed set here, before storage is touched.
type UpdateDeliveryCommand struct { //nolint:recvcheck //using for validation
	userID     kernel.UserID
	deliveryID kernel.UUID
	status     *delivery.Status
	schedule   delivery.Schedule

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryCommand(
	userID kernel.UserID,
	deliveryID kernel.UUID,
	status *string,
	schedule delivery.Schedule,
) (UpdateDeliveryCommand, error) {
	cmd := UpdateDeliveryCommand{
		userID:     userID,
		deliveryID: deliveryID,
		schedule:   schedule,
		guard:      guard.NewConstructorGuard(),
	}

	var statusErr error
	if status != nil {
		parsed, err := delivery.ParseStatus(*status)
		statusErr = err
		cmd.status = &parsed
	}

	if err := errors.Join(userID.Validate(), deliveryID.Validate(), statusErr); err != nil {
		return UpdateDeliveryCommand{}, err
	}

	return cmd, nil
}

// NewUpdateDeliveryStatusCommand is the status-only form of NewUpdateDeliveryCommand.
func NewUpdateDeliveryStatusCommand(userID kernel.UserID, deliveryID kernel.UUID, status string) (UpdateDeliveryCommand, error) {
	return NewUpdateDeliveryCommand(userID, deliveryID, &status, delivery.Schedule{})
}

func (c UpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryCommandIsNotConstructed)
}

func (c UpdateDeliveryCommand) UserID() kernel.UserID       { return c.userID }
func (c UpdateDeliveryCommand) DeliveryID() kernel.UUID     { return c.deliveryID }
func (c UpdateDeliveryCommand) Status() *delivery.Status    { return c.status }
func (c UpdateDeliveryCommand) Schedule() delivery.Schedule { return c.schedule }
