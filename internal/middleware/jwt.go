package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"city.newnan/motd-bot/internal/config"
	"city.newnan/motd-bot/internal/model"
)

// JWTClaims 自定义JWT载荷
type JWTClaims struct {
	jwt.RegisteredClaims
}

// GenerateToken 生成API访问用的JWT Token
func GenerateToken(cfg *config.Config) (string, error) {
	// 设置JWT声明
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.JWTExpireTime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    cfg.JWTIssuer,
			Subject:   "motd-api",
		},
	}

	// 创建Token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken 解析JWT Token
func ParseToken(tokenString string, cfg *config.Config) (*JWTClaims, error) {
	// 解析Token
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	// 提取Claims
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的Token")
}

// JWTAuth JWT认证中间件
//
// 未配置API_ACCESS_KEY时认为接口公开，不做鉴权。
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APIAccessKey == "" {
			c.Next()
			return
		}

		// 从请求头获取Token
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(401, model.ErrorResponse(401, "未授权: 缺少Token"))
			c.Abort()
			return
		}

		// 处理 Bearer Token
		if strings.HasPrefix(tokenString, "Bearer ") {
			tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		}

		// 解析Token
		if _, err := ParseToken(tokenString, cfg); err != nil {
			c.JSON(401, model.ErrorResponse(401, "未授权: "+err.Error()))
			c.Abort()
			return
		}

		c.Next()
	}
}
