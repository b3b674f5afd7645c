package services

import (
	"testing"

	"vaatco/internal/models"
	"vaatco/pkg/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func makeAdmin(id uint, role string, active bool, grants ...models.PermissionGrant) *models.Admin {
	admin := &models.Admin{
		Role:        role,
		IsActive:    active,
		Permissions: datatypes.JSONSlice[models.PermissionGrant](grants),
	}
	admin.ID = id
	return admin
}

func TestAuthorize_NilActor(t *testing.T) {
	err := Authorize(nil, models.ModuleProducts, models.ActionRead)
	assert.True(t, errors.IsCode(err, errors.CodeUnauthorized))
}

func TestAuthorize_InactiveDenied(t *testing.T) {
	actor := makeAdmin(1, models.RoleSuperAdmin, false)
	err := Authorize(actor, models.ModuleProducts, models.ActionRead)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestAuthorize_SuperAdminAllowsEverything(t *testing.T) {
	actor := makeAdmin(1, models.RoleSuperAdmin, true)
	for _, module := range models.AllModules {
		for _, action := range models.AllActions {
			assert.NoError(t, Authorize(actor, module, action))
		}
	}
}

func TestAuthorize_GrantMatching(t *testing.T) {
	actor := makeAdmin(2, models.RoleEditor, true, models.PermissionGrant{
		Module:  models.ModuleBlogs,
		Actions: []string{models.ActionRead, models.ActionUpdate},
	})

	assert.NoError(t, Authorize(actor, models.ModuleBlogs, models.ActionRead))
	assert.NoError(t, Authorize(actor, models.ModuleBlogs, models.ActionUpdate))

	err := Authorize(actor, models.ModuleBlogs, models.ActionDelete)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))

	err = Authorize(actor, models.ModuleProducts, models.ActionRead)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestAuthorize_EmptyGrantsDenied(t *testing.T) {
	actor := makeAdmin(3, models.RoleAdmin, true)
	err := Authorize(actor, models.ModuleGallery, models.ActionRead)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestAuthorize_AdminWithoutGalleryGrantCannotDelete(t *testing.T) {
	actor := makeAdmin(4, models.RoleAdmin, true, models.PermissionGrant{
		Module:  models.ModuleProducts,
		Actions: models.AllActions,
	})
	err := Authorize(actor, models.ModuleGallery, models.ActionDelete)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestAuthorizeAdminMutation_SelfDeleteForbidden(t *testing.T) {
	actor := makeAdmin(1, models.RoleSuperAdmin, true)
	err := AuthorizeAdminMutation(actor, actor, AdminMutationDelete)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestAuthorizeAdminMutation_SelfStatusForbidden(t *testing.T) {
	actor := makeAdmin(1, models.RoleSuperAdmin, true)
	err := AuthorizeAdminMutation(actor, actor, AdminMutationStatus)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestAuthorizeAdminMutation_NonSuperAdminForbidden(t *testing.T) {
	actor := makeAdmin(2, models.RoleAdmin, true)
	target := makeAdmin(3, models.RoleEditor, true)
	err := AuthorizeAdminMutation(actor, target, AdminMutationCreate)
	assert.True(t, errors.IsCode(err, errors.CodeForbidden))
}

func TestAuthorizeAdminMutation_SuperAdminTargetProtected(t *testing.T) {
	actor := makeAdmin(1, models.RoleSuperAdmin, true)
	target := makeAdmin(2, models.RoleSuperAdmin, true)

	for _, mutation := range []string{AdminMutationStatus, AdminMutationPermissions, AdminMutationDelete} {
		err := AuthorizeAdminMutation(actor, target, mutation)
		assert.True(t, errors.IsCode(err, errors.CodeForbidden), "mutation: %s", mutation)
	}
}

func TestAuthorizeAdminMutation_SuperAdminManagesOthers(t *testing.T) {
	actor := makeAdmin(1, models.RoleSuperAdmin, true)
	target := makeAdmin(2, models.RoleEditor, true)

	assert.NoError(t, AuthorizeAdminMutation(actor, nil, AdminMutationCreate))
	assert.NoError(t, AuthorizeAdminMutation(actor, target, AdminMutationStatus))
	assert.NoError(t, AuthorizeAdminMutation(actor, target, AdminMutationPermissions))
	assert.NoError(t, AuthorizeAdminMutation(actor, target, AdminMutationDelete))
}

func TestNormalizePermissions(t *testing.T) {
	grants := []models.PermissionGrant{
		{Module: models.ModuleProducts, Actions: []string{models.ActionRead, "bogus", models.ActionRead}},
		{Module: "unknown", Actions: []string{models.ActionRead}},
		{Module: models.ModuleBlogs, Actions: []string{"bogus"}},
	}

	normalized := normalizePermissions(grants)
	assert.Len(t, normalized, 1)
	assert.Equal(t, models.ModuleProducts, normalized[0].Module)
	assert.Equal(t, []string{models.ActionRead}, normalized[0].Actions)
}
