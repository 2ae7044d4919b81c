package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range AllRoles() {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseRole("moderator")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/business/dashboard", RoleBusiness.DashboardPath())
}
