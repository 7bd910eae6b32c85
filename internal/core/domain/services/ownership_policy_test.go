package services_test

import (
	"testing"

	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestOwnershipPolicy_Authorize(t *testing.T) {
	policy := services.NewOwnershipPolicy()

	require.NoError(t, policy.Authorize(nil, 5, "order", "x"), "admin path")
	require.NoError(t, policy.Authorize(services.AsRequester(5), 5, "order", "x"))
	require.ErrorIs(t, policy.Authorize(services.AsRequester(6), 5, "order", "x"), errs.ErrAccessDenied)
}
