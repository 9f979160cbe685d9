package middleware

import (
	"Pulseboard/internal/pkg/response"
	"slices"

	"github.com/gin-gonic/gin"
)

// CheckRoles 要求当前用户至少持有指定角色之一
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice("roles")

		allowed := false
		for _, required := range requiredRoles {
			if slices.Contains(roles, required) {
				allowed = true
				break
			}
		}
		if !allowed {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}
