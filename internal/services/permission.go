package services

import (
	"fmt"

	"vaatco/internal/models"
	"vaatco/pkg/errors"
)

// 管理员账户的变更类型，用于结构性规则判定
const (
	AdminMutationCreate      = "create"
	AdminMutationStatus      = "status"
	AdminMutationPermissions = "permissions"
	AdminMutationDelete      = "delete"
)

// Authorize 判定操作者能否对指定模块执行指定操作。
// 规则按序：停用账户一律拒绝；super_admin无条件放行；
// 其余扫描授权集匹配模块与操作。
func Authorize(actor *models.Admin, module, action string) error {
	if actor == nil {
		return errors.NewUnauthorized("Authentication required")
	}
	if !actor.IsActive {
		return errors.NewForbidden("Account has been deactivated")
	}
	if actor.Role == models.RoleSuperAdmin {
		return nil
	}

	for _, grant := range actor.Permissions {
		if grant.Module != module {
			continue
		}
		for _, allowed := range grant.Actions {
			if allowed == action {
				return nil
			}
		}
	}

	return errors.NewForbidden(fmt.Sprintf("Access denied: requires %s:%s permission", module, action))
}

// AuthorizeAdminMutation 管理员账户变更的结构性规则，
// 先于通用权限判定执行：
// 不允许删除或停用自己的账户；仅super_admin可创建管理员、
// 变更状态、调整权限或删除管理员；super_admin账户不接受
// 任何人发起的状态/权限/删除变更。
func AuthorizeAdminMutation(actor, target *models.Admin, mutation string) error {
	if actor == nil {
		return errors.NewUnauthorized("Authentication required")
	}
	if !actor.IsActive {
		return errors.NewForbidden("Account has been deactivated")
	}

	if target != nil && actor.ID == target.ID {
		switch mutation {
		case AdminMutationDelete:
			return errors.NewForbidden("Cannot delete your own account")
		case AdminMutationStatus:
			return errors.NewForbidden("Cannot change your own account status")
		}
	}

	if actor.Role != models.RoleSuperAdmin {
		return errors.NewForbidden("Access denied: super admin role required")
	}

	if target != nil && target.Role == models.RoleSuperAdmin {
		switch mutation {
		case AdminMutationStatus, AdminMutationPermissions, AdminMutationDelete:
			return errors.NewForbidden("Super admin accounts cannot be modified")
		}
	}

	return nil
}
