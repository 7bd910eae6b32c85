package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	addressID := kernel.NewUUID()
	lines := []services.LineRequest{{PizzaID: 1, Quantity: 2}, {PizzaID: 3, Quantity: 1}}

	cmd, err := commands.NewCreateOrderCommand(7, lines, &addressID)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, kernel.UserID(7), cmd.UserID())
	assert.Equal(t, lines, cmd.Lines())
	require.NotNil(t, cmd.AddressID())
	assert.Equal(t, addressID, *cmd.AddressID())
}

func TestNewCreateOrderCommand_WithoutAddress(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(7, []services.LineRequest{{PizzaID: 1, Quantity: 1}}, nil)
	require.NoError(t, err)
	assert.Nil(t, cmd.AddressID())
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		userID kernel.UserID
		lines  []services.LineRequest
		target error
	}{
		{"no lines", 7, nil, order.ErrOrderHasNoItems},
		{"zero quantity", 7, []services.LineRequest{{PizzaID: 1, Quantity: 0}}, errs.ErrValueIsInvalid},
		{"duplicate pizza", 7, []services.LineRequest{{PizzaID: 1, Quantity: 1}, {PizzaID: 1, Quantity: 2}}, errs.ErrValueIsInvalid},
		{"missing user", 0, []services.LineRequest{{PizzaID: 1, Quantity: 1}}, errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(tt.userID, tt.lines, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestNewCreateOrderCommand_InvalidAddressID(t *testing.T) {
	invalid := kernel.UUID{}
	_, err := commands.NewCreateOrderCommand(7, []services.LineRequest{{PizzaID: 1, Quantity: 1}}, &invalid)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCreateOrderCommand_LinesAreCopied(t *testing.T) {
	lines := []services.LineRequest{{PizzaID: 1, Quantity: 1}}
	cmd, err := commands.NewCreateOrderCommand(7, lines, nil)
	require.NoError(t, err)

	lines[0].Quantity = 99
	got := cmd.Lines()
	got[0].Quantity = 42

	assert.Equal(t, 1, cmd.Lines()[0].Quantity)
}
