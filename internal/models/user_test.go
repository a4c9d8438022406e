package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Rank(t *testing.T) {
	t.Parallel()

	assert.Greater(t, RoleAdmin.Rank(), RoleLeader.Rank())
	assert.Greater(t, RoleLeader.Rank(), RoleMember.Rank())
}

func TestRole_AtLeast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role Role
		min  Role
		want bool
	}{
		{RoleAdmin, RoleLeader, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleLeader, RoleLeader, true},
		{RoleLeader, RoleAdmin, false},
		{RoleMember, RoleLeader, false},
		{RoleMember, RoleMember, true},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.role.AtLeast(tc.min), "%s at least %s", tc.role, tc.min)
	}
}

func TestRole_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleMember.Valid())
	assert.True(t, RoleLeader.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestImportance_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, ImportanceLow.Valid())
	assert.True(t, ImportanceMedium.Valid())
	assert.True(t, ImportanceHigh.Valid())
	assert.False(t, Importance("urgent").Valid())
}

func TestHasCode(t *testing.T) {
	t.Parallel()

	err := NewValidationError("bad input")
	assert.True(t, HasCode(err, CodeValidation))
	assert.False(t, HasCode(err, CodeStorage))

	wrapped := NewStorageError(errors.New("connection reset"))
	assert.True(t, HasCode(wrapped, CodeStorage))
	assert.False(t, HasCode(errors.New("plain"), CodeStorage))
}
