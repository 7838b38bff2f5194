package middleware

import (
	"StreamHub/internal/service"
	"StreamHub/pkg/apperr"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// context中存放调用者身份的key
const callerKey = "caller"

// TokenValidator 由AuthService实现，中间件只需要这一个方法
type TokenValidator interface {
	ValidateToken(token string) (service.Caller, error)
}

// 流程：1、从http请求中取出"Authorization"字段 2、验证"Bearer [token]" 3、校验token 4、把调用者身份放入context
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// 立刻调用c.Abort()，阻止后续的任何处理器（包括其他中间件和最终的handler）被执行
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "请求未包含授权令牌"})
			return
		}

		// 通常Token的格式是 "Bearer [token]"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "授权令牌格式不正确"})
			return
		}

		caller, err := tokens.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(apperr.HTTPStatus(apperr.KindOf(err)), gin.H{"error": apperr.PublicMessage(err)})
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireRole 必须放在AuthMiddleware之后
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CurrentCaller(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "用户未认证"})
			return
		}
		if caller.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "没有访问权限"})
			return
		}
		c.Next()
	}
}

// CurrentCaller 取出AuthMiddleware放入的调用者身份
func CurrentCaller(c *gin.Context) (service.Caller, bool) {
	value, exists := c.Get(callerKey)
	if !exists {
		return service.Caller{}, false
	}
	caller, ok := value.(service.Caller)
	return caller, ok
}
