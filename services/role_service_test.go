package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resman-simple/apperrors"
	"github.com/resman-simple/dto"
	"github.com/resman-simple/models"
)

func TestCreateRoleExpandsActionsIntoGrants(t *testing.T) {
	svc := NewRoleService(setupTestDB(t))

	role, err := svc.CreateRole(dto.CreateRoleRequest{
		Name: "editor",
		Permissions: []dto.PermissionInput{
			{Resource: models.ResourceUser, Actions: []models.Action{models.ActionRead, models.ActionUpdate}},
		},
	})

	require.NoError(t, err)
	assert.Len(t, role.Permissions, 2)
}

func TestCreateRoleDeduplicatesGrants(t *testing.T) {
	svc := NewRoleService(setupTestDB(t))

	role, err := svc.CreateRole(dto.CreateRoleRequest{
		Name: "editor",
		Permissions: []dto.PermissionInput{
			{Resource: models.ResourceUser, Actions: []models.Action{models.ActionRead, models.ActionRead}},
			{Resource: models.ResourceUser, Actions: []models.Action{models.ActionRead}},
		},
	})

	require.NoError(t, err)
	assert.Len(t, role.Permissions, 1)
}

func TestCreateRoleRejectsUnknownEnums(t *testing.T) {
	svc := NewRoleService(setupTestDB(t))

	_, err := svc.CreateRole(dto.CreateRoleRequest{
		Name: "editor",
		Permissions: []dto.PermissionInput{
			{Resource: models.Resource("PLANET"), Actions: []models.Action{models.ActionRead}},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateRole(dto.CreateRoleRequest{
		Name: "editor",
		Permissions: []dto.PermissionInput{
			{Resource: models.ResourceUser, Actions: []models.Action{models.Action("EXPLODE")}},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateRoleLeavesExactlyTheNewSet(t *testing.T) {
	svc := NewRoleService(setupTestDB(t))

	role, err := svc.CreateRole(dto.CreateRoleRequest{
		Name: "editor",
		Permissions: []dto.PermissionInput{
			{Resource: models.ResourceUser, Actions: []models.Action{models.ActionRead, models.ActionUpdate}},
		},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRole(role.ID, dto.UpdateRoleRequest{
		Name: "editor",
		Permissions: []dto.PermissionInput{
			{Resource: models.ResourceFile, Actions: []models.Action{models.ActionManage}},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Permissions, 1)
	assert.Equal(t, models.ResourceFile, updated.Permissions[0].Resource)
	assert.Equal(t, models.ActionManage, updated.Permissions[0].Action)
}
