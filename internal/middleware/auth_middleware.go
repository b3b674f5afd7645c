package middleware

import (
	"strings"

	"vaatco/internal/models"
	"vaatco/internal/services"
	"vaatco/pkg/jwt"
	"vaatco/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 权限中间件
type AuthMiddleware struct {
	adminService *services.AdminService
	jwtManager   *jwt.JWTManager
}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		adminService: services.NewAdminService(),
		jwtManager:   jwt.GetJWTManager(),
	}
}

// RequireLogin 要求携带有效JWT且账户处于启用状态
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		tokenString := authHeader[7:]
		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token is invalid or expired")
			c.Abort()
			return
		}

		// 每次请求重新加载账户，令牌签发后被停用的账户立即失效
		admin, err := m.adminService.GetByID(claims.AdminID)
		if err != nil {
			response.Unauthorized(c, "Account no longer exists")
			c.Abort()
			return
		}
		if !admin.IsActive {
			response.Forbidden(c, "Account has been deactivated")
			c.Abort()
			return
		}

		c.Set("admin", admin)
		c.Set("admin_id", admin.ID)
		c.Next()
	}
}

// RequirePermission 要求指定模块与操作的权限
func (m *AuthMiddleware) RequirePermission(module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := CurrentAdmin(c)
		if admin == nil {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if err := services.Authorize(admin, module, action); err != nil {
			response.HandleError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin 要求super_admin角色
func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := CurrentAdmin(c)
		if admin == nil {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if admin.Role != models.RoleSuperAdmin {
			response.Forbidden(c, "Access denied: super admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentAdmin 从上下文取出已认证的管理员
func CurrentAdmin(c *gin.Context) *models.Admin {
	value, exists := c.Get("admin")
	if !exists {
		return nil
	}
	admin, ok := value.(*models.Admin)
	if !ok {
		return nil
	}
	return admin
}

// CurrentAdminID 从上下文取出已认证的管理员ID
func CurrentAdminID(c *gin.Context) uint {
	if admin := CurrentAdmin(c); admin != nil {
		return admin.ID
	}
	return 0
}
