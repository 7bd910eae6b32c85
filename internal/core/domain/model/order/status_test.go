package order_test

import (
	"testing"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "PAID", "DELIVERED", "CANCELLED"} {
		status, err := order.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, status.String())
	}

	for _, s := range []string{"", "pending", "SHIPPED", "REFUNDED"} {
		_, err := order.ParseStatus(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
	}
}

func TestStatus_TransitionTable(t *testing.T) {
	all := []order.Status{order.Pending, order.Paid, order.Delivered, order.Cancelled}
	allowed := map[order.Status][]order.Status{
		order.Pending:   {order.Pending, order.Paid, order.Cancelled},
		order.Paid:      {order.Paid, order.Delivered, order.Cancelled},
		order.Delivered: {order.Delivered},
		order.Cancelled: {order.Cancelled},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}

			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				assert.Equal(t, want, from.CanTransitionTo(to))

				next, err := from.TransitionTo(to)
				if want {
					require.NoError(t, err)
					assert.Equal(t, to, next)
					return
				}
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
			})
		}
	}
}

func TestStatus_TransitionTo_RejectsUnknownTarget(t *testing.T) {
	_, err := order.Pending.TransitionTo(order.Status("SHIPPED"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Paid.IsTerminal())
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}

func TestAllowedPredecessors(t *testing.T) {
	assert.ElementsMatch(t, []order.Status{order.Pending}, order.AllowedPredecessors(order.Pending))
	assert.ElementsMatch(t, []order.Status{order.Paid, order.Pending}, order.AllowedPredecessors(order.Paid))
	assert.ElementsMatch(t, []order.Status{order.Delivered, order.Paid}, order.AllowedPredecessors(order.Delivered))
	assert.ElementsMatch(t,
		[]order.Status{order.Cancelled, order.Pending, order.Paid},
		order.AllowedPredecessors(order.Cancelled))
}
