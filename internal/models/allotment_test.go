package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllotmentStatusIsValid(t *testing.T) {
	require.True(t, AllotmentStatusPending.IsValid())
	require.True(t, AllotmentStatusCollected.IsValid())
	require.True(t, AllotmentStatusReturned.IsValid())
	require.False(t, AllotmentStatus("shipped").IsValid())
	require.False(t, AllotmentStatus("").IsValid())
}

func TestAllotmentStatusIsSettable(t *testing.T) {
	require.True(t, AllotmentStatusPending.IsSettable())
	require.True(t, AllotmentStatusCollected.IsSettable())
	require.False(t, AllotmentStatusReturned.IsSettable())
}

func TestRoleIsValid(t *testing.T) {
	require.True(t, RoleAdmin.IsValid())
	require.True(t, RoleDistributor.IsValid())
	require.False(t, Role("manager").IsValid())
}
