package v1

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"city.newnan/motd-bot/internal/config"
	"city.newnan/motd-bot/internal/middleware"
	"city.newnan/motd-bot/internal/model"
)

// AuthController 认证相关API控制器
type AuthController struct {
	Config *config.Config
}

// NewAuthController 创建认证控制器
func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{Config: cfg}
}

// Token 用访问密钥换取JWT Token
// @Summary 获取API Token
// @Description 提交配置的访问密钥，换取后续请求使用的JWT
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body model.TokenRequest true "访问密钥"
// @Success 200 {object} model.Response{data=map[string]interface{}} "获取成功"
// @Failure 400 {object} model.Response "请求参数错误"
// @Failure 401 {object} model.Response "密钥错误"
// @Router /api/v1/auth/token [post]
func (c *AuthController) Token(ctx *gin.Context) {
	if c.Config.APIAccessKey == "" {
		ctx.JSON(http.StatusBadRequest, model.ErrorResponse(http.StatusBadRequest, "未启用API鉴权"))
		return
	}

	var req model.TokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, model.ErrorResponse(http.StatusBadRequest, "无效的请求参数: "+err.Error()))
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.AccessKey), []byte(c.Config.APIAccessKey)) != 1 {
		ctx.JSON(http.StatusUnauthorized, model.ErrorResponse(http.StatusUnauthorized, "访问密钥错误"))
		return
	}

	token, err := middleware.GenerateToken(c.Config)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, model.ErrorResponse(http.StatusInternalServerError, "生成Token失败: "+err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, model.SuccessResponse(map[string]interface{}{
		"token": token,
	}))
}
